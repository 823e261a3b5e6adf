// Package generation tracks AI content generation per seller.
//
// An Orchestrator exposes one operation per use case. Each operation owns an
// OperationState slot that is mutated only here: Loading is set when an
// invocation starts and cleared when the freshest invocation for that slot
// resolves. Resolutions of superseded invocations are not applied, so the
// slot always describes the most recently started call.
package generation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/llm"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/prompts"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/types"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

// Operation names one generation use case.
type Operation string

const (
	OpReviewReply         Operation = "review_reply"
	OpConfirmMessage      Operation = "confirm_message"
	OpCancelMessage       Operation = "cancel_message"
	OpLuckyBagDescription Operation = "lucky_bag_description"
	OpSalesRecommendation Operation = "sales_recommendation"
)

// Operations returns every supported operation in a stable order.
func Operations() []Operation {
	return []Operation{
		OpReviewReply,
		OpConfirmMessage,
		OpCancelMessage,
		OpLuckyBagDescription,
		OpSalesRecommendation,
	}
}

// OperationState is the observable state of one operation. An empty Error
// means no error.
type OperationState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Snapshot is a consistent view of every operation of one orchestrator.
type Snapshot struct {
	// Loading is true while any operation is in flight.
	Loading bool `json:"loading"`
	// Error is the error of the most recently started or settled operation.
	Error      string                       `json:"error,omitempty"`
	Operations map[Operation]OperationState `json:"operations"`
}

type slot struct {
	state  OperationState
	issued uint64
}

// Orchestrator runs generation operations and tracks their state.
// It is safe for concurrent use.
type Orchestrator struct {
	client llm.Client
	model  string

	mu    sync.Mutex
	slots map[Operation]*slot
	last  Operation
}

func New(client llm.Client) *Orchestrator {
	slots := make(map[Operation]*slot, len(Operations()))
	for _, op := range Operations() {
		slots[op] = &slot{}
	}
	o := &Orchestrator{
		client: client,
		slots:  slots,
	}
	if named, ok := client.(interface{ Model() string }); ok {
		o.model = named.Model()
	}
	return o
}

// ReviewReply drafts a reply to a customer review.
func (o *Orchestrator) ReviewReply(ctx context.Context, placeName, content string, rating int) (string, error) {
	return o.run(ctx, OpReviewReply, prompts.ReviewReply(placeName, content, rating))
}

// ConfirmMessage drafts an order confirmation notice.
func (o *Orchestrator) ConfirmMessage(ctx context.Context, place types.PlaceInfo) (string, error) {
	return o.run(ctx, OpConfirmMessage, prompts.ConfirmMessage(place))
}

// CancelMessage drafts an order cancellation notice.
func (o *Orchestrator) CancelMessage(ctx context.Context, place types.PlaceInfo, reason string) (string, error) {
	return o.run(ctx, OpCancelMessage, prompts.CancelMessage(place, reason))
}

// LuckyBagDescription drafts a product description from today's menu.
func (o *Orchestrator) LuckyBagDescription(ctx context.Context, place types.PlaceInfo, menuItems []string) (string, error) {
	return o.run(ctx, OpLuckyBagDescription, prompts.LuckyBagDescription(place, menuItems))
}

// SalesRecommendation suggests how many lucky bags to list.
func (o *Orchestrator) SalesRecommendation(ctx context.Context, stats types.StatsData) (string, error) {
	return o.run(ctx, OpSalesRecommendation, prompts.SalesRecommendation(stats))
}

// State returns the current state of op.
func (o *Orchestrator) State(op Operation) OperationState {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s, ok := o.slots[op]; ok {
		return s.state
	}
	return OperationState{}
}

// IdleSnapshot is the state of an orchestrator that has run nothing.
func IdleSnapshot() Snapshot {
	snap := Snapshot{Operations: make(map[Operation]OperationState, len(Operations()))}
	for _, op := range Operations() {
		snap.Operations[op] = OperationState{}
	}
	return snap
}

// Snapshot returns the aggregate and per-operation state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{Operations: make(map[Operation]OperationState, len(o.slots))}
	for op, s := range o.slots {
		snap.Operations[op] = s.state
		if s.state.Loading {
			snap.Loading = true
		}
	}
	if o.last != "" {
		snap.Error = o.slots[o.last].state.Error
	}
	return snap
}

func (o *Orchestrator) run(ctx context.Context, op Operation, req llm.GenerationRequest) (string, error) {
	seq := o.begin(op)
	invocationID := uuid.NewString()
	start := time.Now()

	utils.Zlog.Debug("Generation started",
		zap.String("operation", string(op)),
		zap.String("invocation_id", invocationID),
		zap.Uint64("seq", seq))

	text, err := o.client.Generate(ctx, req)

	applied := o.finish(op, seq, err)

	fields := []zap.Field{
		zap.String("operation", string(op)),
		zap.String("invocation_id", invocationID),
		zap.Uint64("seq", seq),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
		zap.Bool("applied", applied),
	}
	if o.model != "" {
		fields = append(fields, zap.String("model", o.model))
	}
	if err != nil {
		fields = append(fields, zap.String("kind", string(llm.KindOf(err))), zap.Error(err))
		utils.Zlog.Warn("Generation failed", fields...)
		return "", err
	}

	utils.Zlog.Info("Generation completed", append(fields, zap.Int("length", len(text)))...)
	return text, nil
}

// begin marks op as loading and returns the sequence number of the new invocation.
func (o *Orchestrator) begin(op Operation) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.slots[op]
	s.issued++
	s.state = OperationState{Loading: true}
	o.last = op
	return s.issued
}

// finish applies the terminal state unless a newer invocation of op started
// after seq. It reports whether the update was applied.
func (o *Orchestrator) finish(op Operation, seq uint64, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.slots[op]
	if seq != s.issued {
		return false
	}

	s.state.Loading = false
	if err != nil {
		s.state.Error = err.Error()
	}
	o.last = op
	return true
}
