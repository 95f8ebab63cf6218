package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/DERICHRIS/immantravels/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/phpdave11/gofpdf"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrTooManyAttempts = errors.New("too many login attempts")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrUnknownFormat   = errors.New("unknown export format")
)

type AdminUseCase interface {
	Login(ctx context.Context, password string) (string, error)
	VerifyToken(token string) error
	ListBookings(ctx context.Context) ([]domain.BookingRecord, error)
	Export(ctx context.Context, format string) (data []byte, contentType, filename string, err error)
}

type AdminService struct {
	bookings     repository.BookingRepository
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
	limiter      *rate.Limiter
}

// NewAdminService wires the read-only admin surface. passwordHash is a
// bcrypt hash loaded from the environment; the cleartext is never held.
func NewAdminService(bookings repository.BookingRepository, passwordHash, jwtSecret string, tokenTTL time.Duration, loginPerMinute int) *AdminService {
	if loginPerMinute <= 0 {
		loginPerMinute = 5
	}
	return &AdminService{
		bookings:     bookings,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(loginPerMinute)), loginPerMinute),
	}
}

// Login compares the password against the configured hash and issues a
// signed session token. Attempts are rate limited so the gate cannot be
// brute forced by re-rendering.
func (s *AdminService) Login(ctx context.Context, password string) (string, error) {
	if !s.limiter.Allow() {
		return "", ErrTooManyAttempts
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AdminService) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

func (s *AdminService) ListBookings(ctx context.Context) ([]domain.BookingRecord, error) {
	return s.bookings.ListAll(ctx)
}

// Export renders all bookings as a downloadable artifact. CSV mirrors
// the flat sheet layout; PDF is a printable passenger manifest.
func (s *AdminService) Export(ctx context.Context, format string) ([]byte, string, string, error) {
	records, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, "", "", err
	}

	switch format {
	case "", "csv":
		data, err := renderCSV(records)
		if err != nil {
			return nil, "", "", err
		}
		return data, "text/csv", "bookings.csv", nil
	case "pdf":
		data, err := renderPDF(records)
		if err != nil {
			return nil, "", "", err
		}
		return data, "application/pdf", "bookings.pdf", nil
	default:
		return nil, "", "", ErrUnknownFormat
	}
}

var exportHeader = []string{"Name", "Gender", "Age", "Phone", "Email", "Bus Route", "Travel Date", "Booking Date", "Seat Number"}

func renderCSV(records []domain.BookingRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.PassengerName,
			rec.Gender,
			strconv.Itoa(rec.Age),
			rec.Phone,
			rec.Email,
			rec.RouteName,
			rec.TravelDate.Format("2006-01-02"),
			rec.BookingDate.Format("2006-01-02"),
			strconv.Itoa(rec.SeatNumber),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(records []domain.BookingRecord) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "IMMANUEL Travels - Booking Manifest")
	pdf.Ln(12)

	widths := []float64{40, 18, 12, 30, 50, 45, 25, 25, 15}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range exportHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range records {
		cells := []string{
			rec.PassengerName,
			rec.Gender,
			strconv.Itoa(rec.Age),
			rec.Phone,
			rec.Email,
			rec.RouteName,
			rec.TravelDate.Format("2006-01-02"),
			rec.BookingDate.Format("2006-01-02"),
			strconv.Itoa(rec.SeatNumber),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ AdminUseCase = (*AdminService)(nil)
