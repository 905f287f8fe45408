package validate

import (
	"regexp"
	"strconv"
	"strings"

	"shopadmin/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'\-/.]{1,50}$`)
	reHex   = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	reDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len([]rune(s)) > 50 {
		s = string([]rune(s)[:50])
	}
	return s, reQ.MatchString(s)
}

// ID parses a positive backend id.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// OptionalID treats blank as unset; anything else must be a valid id.
func OptionalID(s string) (*int64, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	n, ok := ID(s)
	if !ok {
		return nil, false
	}
	return &n, true
}

// IDs parses every non-blank value, failing on the first bad one.
func IDs(vals []string) ([]int64, bool) {
	out := []int64{}
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			continue
		}
		n, ok := ID(v)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > 100 {
		return "", false
	}
	return s, true
}

// Text bounds free-form fields; blank is allowed.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len([]rune(s)) <= max
}

func HexColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return strings.ToUpper(s), reHex.MatchString(s)
}

// Price accepts a non-negative decimal.
func Price(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil && f >= 0
}

func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "" || reDate.MatchString(s)
}

func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func Gender(s string) (domain.Gender, bool) {
	g := domain.Gender(strings.TrimSpace(s))
	return g, g == domain.GenderMan || g == domain.GenderWoman
}

func ProductStatus(s string) (domain.ProductStatus, bool) {
	v := domain.ProductStatus(strings.TrimSpace(s))
	switch v {
	case domain.ProductAvailable, domain.ProductSold, domain.ProductDeleted:
		return v, true
	}
	return "", false
}

func NewsStatus(s string) (domain.NewsStatus, bool) {
	v := domain.NewsStatus(strings.TrimSpace(s))
	switch v {
	case domain.NewsDraft, domain.NewsPublished, domain.NewsArchived:
		return v, true
	}
	return "", false
}

func OrderStatus(s string) (domain.OrderStatus, bool) {
	v := domain.OrderStatus(strings.TrimSpace(s))
	return v, v.Valid()
}

func PaymentMethod(s string) (domain.PaymentMethod, bool) {
	v := domain.PaymentMethod(strings.TrimSpace(s))
	switch v {
	case domain.PaymentCash, domain.PaymentCard, domain.PaymentBankTransfer:
		return v, true
	}
	return "", false
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
