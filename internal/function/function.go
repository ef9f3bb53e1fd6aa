// Package function serves puzzle solving over HTTP for the Functions Framework.
package function

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"crosswarped.com/wordbrain"
	"crosswarped.com/wordbrain/internal/config"
	"crosswarped.com/wordbrain/internal/dictstore"
	"crosswarped.com/wordbrain/pkg/dict"
	"crosswarped.com/wordbrain/pkg/trie"
)

var (
	solveRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordbrain_solve_requests_total",
		Help: "Solve requests by result",
	}, []string{"result"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordbrain_solve_duration_seconds",
		Help:    "Time spent searching for solutions",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	})

	solutionsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordbrain_solutions_returned",
		Help:    "Solutions returned per request",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	dictionaryLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordbrain_dictionary_loads_total",
		Help: "Dictionary load attempts by result",
	}, []string{"result"})
)

var tracer = otel.Tracer("crosswarped.com/wordbrain/internal/function")

type SolveRequest struct {
	Rows         []string `json:"rows"`
	WordSizes    []int    `json:"wordSizes"`
	MaxSolutions int      `json:"maxSolutions"`
}

type SolutionJSON struct {
	Words []string   `json:"words"`
	Cells [][][2]int `json:"cells"` // Cells[i][j] is the {x, y} of letter j of word i
}

type SolveResponse struct {
	Success   bool           `json:"success"`
	Solutions []SolutionJSON `json:"solutions"`
	Error     string         `json:"error,omitempty"`
}

// Loader returns the dictionary to solve against.
type Loader func(ctx context.Context) (*trie.Trie, error)

// Handler answers solve requests. The dictionary is loaded on the first request and
// shared read-only by every request after it.
type Handler struct {
	logger       *zap.Logger
	maxSolutions int
	load         Loader

	mu   sync.Mutex
	dict *trie.Trie
}

// NewHandler returns a handler loading the configured dictionary through store.
func NewHandler(cfg *config.Config, store *dictstore.Store, logger *zap.Logger) *Handler {
	load := func(ctx context.Context) (*trie.Trie, error) {
		r, err := store.Open(ctx, cfg.Dictionary)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return dict.Load(r, cfg.MaxNodes, logger.With(zap.String("dictionary", cfg.Dictionary)))
	}
	return NewHandlerWithLoader(load, cfg.Function.MaxSolutions, logger)
}

func NewHandlerWithLoader(load Loader, maxSolutions int, logger *zap.Logger) *Handler {
	return &Handler{logger: logger, maxSolutions: maxSolutions, load: load}
}

func (h *Handler) dictionary(ctx context.Context) (*trie.Trie, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dict != nil {
		return h.dict, nil
	}

	ctx, span := tracer.Start(ctx, "wordbrain.load_dictionary")
	defer span.End()

	d, err := h.load(ctx)
	if err != nil {
		// Not cached: the next request tries again.
		dictionaryLoads.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	dictionaryLoads.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int("nodes", d.Len()))
	h.dict = d
	return d, nil
}

func (h *Handler) execute(ctx context.Context, req SolveRequest) ([]wordbrain.Solution, error) {
	limit := h.maxSolutions
	if req.MaxSolutions < 0 {
		return nil, fmt.Errorf("%w: maxSolutions must not be negative", wordbrain.ErrUsage)
	}
	if req.MaxSolutions > 0 && req.MaxSolutions < limit {
		limit = req.MaxSolutions
	}

	puzzle, err := wordbrain.NewPuzzle(req.Rows, req.WordSizes)
	if err != nil {
		return nil, err
	}

	d, err := h.dictionary(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}

	ctx, span := tracer.Start(ctx, "wordbrain.solve")
	defer span.End()
	span.SetAttributes(
		attribute.Int("board_size", puzzle.Board().Size()),
		attribute.IntSlice("word_sizes", puzzle.WordSizes()),
		attribute.Int("limit", limit),
	)

	start := time.Now()
	var solutions []wordbrain.Solution
	wordbrain.NewSolver(d, puzzle).Solve(func(sol wordbrain.Solution) bool {
		solutions = append(solutions, sol)
		return len(solutions) < limit && ctx.Err() == nil
	})
	solveDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("solutions", len(solutions)))

	return solutions, ctx.Err()
}

func toJSON(sol wordbrain.Solution) SolutionJSON {
	out := SolutionJSON{
		Words: make([]string, len(sol.Words)),
		Cells: make([][][2]int, len(sol.Words)),
	}
	for i, w := range sol.Words {
		out.Words[i] = w.Letters
		out.Cells[i] = make([][2]int, len(w.Cells))
		for j, c := range w.Cells {
			out.Cells[i][j] = [2]int{c.X, c.Y}
		}
	}
	return out
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wordbrain.ErrUsage), errors.Is(err, wordbrain.ErrBoardTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, dictstore.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		solveRequests.WithLabelValues("bad_method").Inc()
		h.respond(w, http.StatusMethodNotAllowed, SolveResponse{
			Error: fmt.Sprintf("Method %s not allowed", r.Method),
		})
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		solveRequests.WithLabelValues("bad_request").Inc()
		h.respond(w, http.StatusBadRequest, SolveResponse{
			Error: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	solutions, err := h.execute(r.Context(), req)
	if err != nil {
		solveRequests.WithLabelValues("error").Inc()
		h.logger.Warn("solve failed", zap.Strings("rows", req.Rows), zap.Ints("word_sizes", req.WordSizes), zap.Error(err))
		h.respond(w, statusFor(err), SolveResponse{Error: err.Error()})
		return
	}

	solveRequests.WithLabelValues("ok").Inc()
	solutionsReturned.Observe(float64(len(solutions)))
	h.logger.Info("solved",
		zap.Strings("rows", req.Rows),
		zap.Ints("word_sizes", req.WordSizes),
		zap.Int("solutions", len(solutions)))

	response := SolveResponse{
		Success:   true,
		Solutions: make([]SolutionJSON, len(solutions)),
	}
	for i, sol := range solutions {
		response.Solutions[i] = toJSON(sol)
	}
	if len(solutions) == 0 {
		response.Error = "No solutions found for this puzzle"
	}
	h.respond(w, http.StatusOK, response)
}

func (h *Handler) respond(w http.ResponseWriter, status int, response SolveResponse) {
	if response.Solutions == nil {
		response.Solutions = []SolutionJSON{}
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("error encoding response", zap.Error(err))
	}
}
