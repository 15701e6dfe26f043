package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/nao1215/calcsite/internal/breadcrumb"
	"github.com/nao1215/calcsite/internal/calculator"
	"github.com/nao1215/calcsite/internal/model"
	"github.com/nao1215/calcsite/internal/units"
)

// maxBodyBytes bounds compute request bodies.
const maxBodyBytes = 64 << 10

type breadcrumbResponse struct {
	Items          []model.BreadcrumbItem `json:"items"`
	StructuredData *model.BreadcrumbList  `json:"structuredData"`
}

func (s *Server) handleBreadcrumb(w http.ResponseWriter, r *http.Request) {
	items := s.resolver.Resolve(r.URL.Query().Get("path"))
	resp := breadcrumbResponse{Items: []model.BreadcrumbItem{}}
	if len(items) > 0 {
		sd := breadcrumb.StructuredData(items, s.site.BaseURL)
		resp.Items = items
		resp.StructuredData = &sd
	}
	writeJSON(w, http.StatusOK, resp)
}

type convertResponse struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Result   float64 `json:"result"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value, err := calculator.Inputs{"value": q.Get("value")}.Number("value")
	if err != nil {
		writeInputError(w, err)
		return
	}
	category, from, to := q.Get("category"), q.Get("from"), q.Get("to")

	cat, ok := units.Lookup(category)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", category))
		return
	}
	for _, u := range []string{from, to} {
		if !units.HasUnit(cat.Key, u) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown unit %q in category %s", u, cat.Key))
			return
		}
	}

	result := s.converter.Convert(value, cat.Key, from, to)
	if !calculator.IsFinite(result) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("converting %v %s to %s is out of range", value, from, to))
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Value:    value,
		Category: cat.Key,
		From:     from,
		To:       to,
		Result:   result,
	})
}

type currencyResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
}

func (s *Server) handleConvertCurrency(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := calculator.Inputs{"amount": q.Get("amount")}.Number("amount")
	if err != nil {
		writeInputError(w, err)
		return
	}
	from, to := strings.ToUpper(q.Get("from")), strings.ToUpper(q.Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	rate, err := s.rates.Rate(r.Context(), from, to)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	result := s.converter.ConvertCurrency(amount, rate)
	if !calculator.IsFinite(result) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("converting %v %s to %s is out of range", amount, from, to))
		return
	}
	writeJSON(w, http.StatusOK, currencyResponse{
		Amount: amount,
		From:   from,
		To:     to,
		Rate:   rate,
		Result: result,
	})
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.rates.Table(r.Context()))
}

func (s *Server) handleUnits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, units.Categories())
}

func (s *Server) handleUnitCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := units.Lookup(r.PathValue("category"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown category %q", r.PathValue("category")))
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

type calculatorResponse struct {
	model.Calculator

	// Computable reports whether the API can compute results for it.
	Computable bool `json:"computable"`
}

func (s *Server) handleCalculators(w http.ResponseWriter, r *http.Request) {
	calcs := s.catalog.Calculators()
	if slug := r.URL.Query().Get("categoria"); slug != "" {
		calcs = s.catalog.CalculatorsIn(slug)
	}
	out := make([]calculatorResponse, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, calculatorResponse{Calculator: c, Computable: calculator.Supports(c.ID)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.catalog.Calculator(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", r.PathValue("id")))
		return
	}
	writeJSON(w, http.StatusOK, calculatorResponse{Calculator: calc, Computable: calculator.Supports(calc.ID)})
}

// inputValue accepts both JSON strings and numbers.
type inputValue string

func (v *inputValue) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*v = inputValue(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("input must be a string or a number: %w", err)
	}
	*v = inputValue(num.String())
	return nil
}

type computeRequest struct {
	Inputs map[string]inputValue `json:"inputs"`
}

type computeResponse struct {
	*calculator.Result

	// HistoryID is the ID of the stored history entry, empty when saving failed.
	HistoryID string `json:"historyId,omitempty"`
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.catalog.Calculator(id); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", id))
		return
	}

	in, err := readInputs(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.Compute(r.Context(), id, in)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	entry := &model.HistoryEntry{
		CalculatorID: id,
		Inputs:       in,
		Outputs:      result.Outputs,
		Summary:      result.Summary,
	}
	resp := computeResponse{Result: result}
	if err := s.history.Save(r.Context(), entry); err != nil {
		s.logger.Warn("failed to save history entry", "calculator", id, "error", err)
	} else {
		resp.HistoryID = entry.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// readInputs decodes a JSON {"inputs": {...}} body or an urlencoded form.
func readInputs(w http.ResponseWriter, r *http.Request) (calculator.Inputs, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")) //nolint:errcheck // empty type falls through to JSON
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		in := make(calculator.Inputs, len(r.PostForm))
		for k := range r.PostForm {
			in[k] = r.PostForm.Get(k)
		}
		return in, nil
	}

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	in := make(calculator.Inputs, len(req.Inputs))
	for k, v := range req.Inputs {
		in[k] = string(v)
	}
	return in, nil
}

type historyResponse struct {
	CalculatorID string               `json:"calculatorId"`
	Entries      []model.HistoryEntry `json:"entries"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.catalog.Calculator(id); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", id))
		return
	}
	entries, err := s.history.Load(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid 'limit' parameter")
			return
		}
		if n < len(entries) {
			entries = entries[:n]
		}
	}
	writeJSON(w, http.StatusOK, historyResponse{CalculatorID: id, Entries: entries})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.catalog.Calculator(id); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", id))
		return
	}
	if err := s.history.Clear(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	posts := s.catalog.Posts()
	if cat := r.URL.Query().Get("categoria"); cat != "" {
		filtered := make([]model.BlogPost, 0, len(posts))
		for _, p := range posts {
			if strings.EqualFold(p.Category, cat) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.catalog.Post(r.PathValue("slug"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown post %q", r.PathValue("slug")))
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("no endpoint %s", r.URL.Path))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeInputError reports a query parameter error.
func writeInputError(w http.ResponseWriter, err error) {
	writeError(w, statusOf(err), err.Error())
}
