package executor

import (
	"context"
	"errors"
	"fmt"

	"autostream-assistant/internal/constant"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/llm"
	"autostream-assistant/pkg/rag/intent"
	"autostream-assistant/pkg/rag/lead"
	"autostream-assistant/pkg/rag/response"
	"autostream-assistant/pkg/rag/search"
	"autostream-assistant/pkg/rag/state"
	"autostream-assistant/pkg/store"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	NodeClassify         = "classify"
	NodeRetrieve         = "retrieve"
	NodeRespond          = "respond"
	NodeHandleHighIntent = "handle_high_intent"
	NodeEnd              = "end"
)

var ErrUnknownNode = errors.New("unknown node")

type IntentClassifier interface {
	Classify(ctx context.Context, session *store.Session) (intent.Result, error)
}

type LeadExtractor interface {
	Extract(ctx context.Context, text string) lead.Extraction
}

type ReplyGenerator interface {
	Generate(ctx context.Context, retrieved []string, history []llm.Message) (string, error)
}

// LeadCapturer is the side effect fired once per session when all lead fields are known.
// It returns the confirmation line.
type LeadCapturer interface {
	Capture(ctx context.Context, lead store.Lead) string
}

type Deps struct {
	Classifier IntentClassifier
	Retriever  search.Retriever
	Extractor  LeadExtractor
	Generator  ReplyGenerator
	Capturer   LeadCapturer
	Logger     logger.ILogger
	TopK       int
}

// node runs one step on the session and names the next step.
type node func(ctx context.Context, session *store.Session) (string, error)

// Graph is the conversation flow: classify -> retrieve -> respond | handle_high_intent -> end
type Graph struct {
	deps   Deps
	state  *state.Manager
	nodes  map[string]node
	tracer trace.Tracer
}

func New(deps Deps) *Graph {
	if deps.TopK <= 0 {
		deps.TopK = constant.DefaultRetrievalTopK
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Capturer == nil {
		deps.Capturer = NewPrintCapturer(nil)
	}

	g := &Graph{
		deps:   deps,
		state:  state.NewManager(deps.Logger),
		tracer: otel.Tracer("autostream-assistant/executor"),
	}
	g.nodes = map[string]node{
		NodeClassify:         g.classify,
		NodeRetrieve:         g.retrieve,
		NodeRespond:          g.respond,
		NodeHandleHighIntent: g.handleHighIntent,
	}
	return g
}

// Route is the only branch of the graph.
func Route(session *store.Session) string {
	if session.Intent == constant.IntentHighIntent {
		return NodeHandleHighIntent
	}
	return NodeRespond
}

// Turn appends the user's text and runs one traversal. The given session is never modified.
func (g *Graph) Turn(ctx context.Context, session *store.Session, text string) (*store.Session, error) {
	next := session.Clone()
	next.AddUserMessage(text)
	if err := g.run(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Invoke runs one traversal over a copy of session, whose last message is the user's utterance.
// On error the caller keeps its original state.
func (g *Graph) Invoke(ctx context.Context, session *store.Session) (*store.Session, error) {
	next := session.Clone()
	if err := g.run(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (g *Graph) run(ctx context.Context, session *store.Session) error {
	current := NodeClassify
	path := make([]string, 0, 3)

	for steps := 0; current != NodeEnd; steps++ {
		if steps > len(g.nodes) {
			return fmt.Errorf("executor: traversal did not terminate after %v", path)
		}

		fn, ok := g.nodes[current]
		if !ok {
			return fmt.Errorf("executor: %w %q", ErrUnknownNode, current)
		}

		next, err := g.step(ctx, current, fn, session)
		if err != nil {
			g.deps.Logger.Error("Executor", "Turn aborted", map[string]interface{}{
				"session_id": session.ID,
				"node":       current,
				"error":      err.Error(),
			})
			return fmt.Errorf("executor: node %q: %w", current, err)
		}

		path = append(path, current)
		current = next
	}

	g.deps.Logger.Info("Executor", "Turn completed", map[string]interface{}{
		"session_id":    session.ID,
		"path":          path,
		"intent":        session.Intent,
		"plan_choice":   session.PlanChoice,
		"lead_captured": session.LeadCaptured,
	})
	return nil
}

func (g *Graph) step(ctx context.Context, name string, fn node, session *store.Session) (string, error) {
	ctx, span := g.tracer.Start(ctx, "executor."+name)
	defer span.End()

	next, err := fn(ctx, session)
	span.SetAttributes(attribute.String("assistant.intent", session.Intent))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return next, err
}

func (g *Graph) classify(ctx context.Context, session *store.Session) (string, error) {
	result, err := g.deps.Classifier.Classify(ctx, session)
	if err != nil {
		return "", err
	}
	g.state.ApplyClassification(session, result)
	return NodeRetrieve, nil
}

func (g *Graph) retrieve(ctx context.Context, session *store.Session) (string, error) {
	passages, err := g.deps.Retriever.Search(ctx, session.LastUserText(), g.deps.TopK)
	if err != nil {
		return "", err
	}
	g.state.ApplyRetrieval(session, passages)
	return Route(session), nil
}

func (g *Graph) respond(ctx context.Context, session *store.Session) (string, error) {
	reply, err := g.deps.Generator.Generate(ctx, session.Retrieved, session.Messages)
	if err != nil {
		return "", err
	}
	session.AddAssistantMessage(reply)
	return NodeEnd, nil
}

func (g *Graph) handleHighIntent(ctx context.Context, session *store.Session) (string, error) {
	lastUser := session.LastUserText()

	plan := session.PlanChoice
	if plan == "" {
		plan = intent.DetectPlanChoice(lastUser)
	}

	extraction := g.deps.Extractor.Extract(ctx, lastUser)
	if !extraction.OK() {
		g.deps.Logger.Warn("Executor", "No lead fields learned this turn", map[string]interface{}{
			"session_id": session.ID,
			"error":      fmt.Sprint(extraction.Err),
		})
	}

	g.state.ApplyLead(session, lead.Merge(session.LeadInfo, extraction.Fields), plan)
	missing := lead.Missing(session.LeadInfo)

	var reply string
	switch {
	case lead.WantsOnboarding(lastUser, session.LeadCaptured):
		reply = response.OnboardingSteps(plan)

	case len(missing) > 0:
		reply = response.MissingFieldsReply(plan, session.Retrieved, missing)

	case !session.LeadCaptured:
		if err := g.state.MarkCaptured(session); err != nil {
			return "", err
		}
		g.deps.Capturer.Capture(ctx, session.Lead())
		reply = response.CaptureReply(plan)

	default:
		reply = response.FollowUpReply
	}

	session.AddAssistantMessage(reply)
	return NodeEnd, nil
}
