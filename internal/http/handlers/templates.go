package handlers

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"shopadmin/internal/domain"

	html "github.com/gofiber/template/html/v2"
)

// NewEngine loads the page templates from dir with the helpers they use.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	for name, fn := range templateFuncs() {
		engine.AddFunc(name, fn)
	}
	return engine
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
		"dateptr": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
		"idptr": func(v *int64) int64 {
			if v == nil {
				return 0
			}
			return *v
		},
		"hasSize":  func(rows []domain.Size, id int64) bool { return hasKey(rows, id) },
		"hasColor": func(rows []domain.Color, id int64) bool { return hasKey(rows, id) },
		"hasTag":   func(rows []domain.Tag, id int64) bool { return hasKey(rows, id) },
		"join":     strings.Join,
		"statuses": func() []domain.OrderStatus { return domain.OrderStatuses },
		"payments": func() []domain.PaymentMethod {
			return []domain.PaymentMethod{domain.PaymentCash, domain.PaymentCard, domain.PaymentBankTransfer}
		},
		// dict builds the argument map for partials that need more than one value
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
		"pages": func(total int) []int {
			out := make([]int, 0, total)
			for i := 1; i <= total; i++ {
				out = append(out, i)
			}
			return out
		},
	}
}

func hasKey[T interface{ Key() int64 }](rows []T, id int64) bool {
	for _, r := range rows {
		if r.Key() == id {
			return true
		}
	}
	return false
}
