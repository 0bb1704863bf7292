package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// tableStub is a naive in-memory stand-in for one remote table endpoint. It
// understands just enough of the wire contract for the repository tests:
// eq. filters, created_at ordering, representation echo on insert and patch.
type tableStub struct {
	mu   sync.Mutex
	rows []map[string]any
}

func (s *tableStub) seed(rows ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

func (s *tableStub) snapshot() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, len(s.rows))
	copy(out, s.rows)

	return out
}

func (s *tableStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		filters := map[string]string{}
		for key, values := range r.URL.Query() {
			if key == "select" || key == "order" {
				continue
			}
			filters[key] = strings.TrimPrefix(values[0], "eq.")
		}

		switch r.Method {
		case http.MethodGet:
			matched := s.match(filters)
			if order := r.URL.Query().Get("order"); order == "created_at.desc" {
				sort.SliceStable(matched, func(i, j int) bool {
					return fmt.Sprint(matched[i]["created_at"]) > fmt.Sprint(matched[j]["created_at"])
				})
			}
			json.NewEncoder(w).Encode(matched)

		case http.MethodPost:
			var row map[string]any
			json.NewDecoder(r.Body).Decode(&row)
			if _, ok := row["id"]; !ok {
				row["id"] = uuid.NewString()
			}
			if _, ok := row["created_at"]; !ok {
				row["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
			}
			s.rows = append(s.rows, row)
			json.NewEncoder(w).Encode([]map[string]any{row})

		case http.MethodPatch:
			var changes map[string]any
			json.NewDecoder(r.Body).Decode(&changes)
			matched := s.match(filters)
			for _, row := range matched {
				for key, value := range changes {
					row[key] = value
				}
			}
			json.NewEncoder(w).Encode(matched)

		case http.MethodDelete:
			kept := make([]map[string]any, 0, len(s.rows))
			for _, row := range s.rows {
				if !matches(row, filters) {
					kept = append(kept, row)
				}
			}
			s.rows = kept
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (s *tableStub) match(filters map[string]string) []map[string]any {
	matched := make([]map[string]any, 0, len(s.rows))
	for _, row := range s.rows {
		if matches(row, filters) {
			matched = append(matched, row)
		}
	}

	return matched
}

func matches(row map[string]any, filters map[string]string) bool {
	for key, want := range filters {
		if fmt.Sprint(row[key]) != want {
			return false
		}
	}

	return true
}
