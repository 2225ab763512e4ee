package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/typeforge/sdk/diag"
	"github.com/typeforge/sdk/model"
)

// fixedCheck is a stub check emitting a predefined set of severities for
// whatever root it visits.
type fixedCheck struct {
	name       string
	severities []diag.Severity
}

func (c *fixedCheck) Name() string { return c.name }

func (c *fixedCheck) emit(n model.Node) *diag.Result {
	res := diag.NewResult()
	for _, sev := range c.severities {
		res.AddMessage("finding", n.ID(), n.NodeKind().String(), sev)
	}
	return res
}

func (c *fixedCheck) VisitDataType(t *model.DataType) *diag.Result       { return c.emit(t) }
func (c *fixedCheck) VisitTypeProfile(p *model.TypeProfile) *diag.Result { return c.emit(p) }
func (c *fixedCheck) VisitAttribute(a *model.Attribute) *diag.Result     { return c.emit(a) }
func (c *fixedCheck) VisitOperation(o *model.Operation) *diag.Result     { return c.emit(o) }
func (c *fixedCheck) VisitOperationStep(s *model.OperationStep) *diag.Result {
	return c.emit(s)
}
func (c *fixedCheck) VisitAttributeMapping(m *model.AttributeMapping) *diag.Result {
	return c.emit(m)
}

func factoryFor(name string, severities ...diag.Severity) CheckFactory {
	return func() Check { return &fixedCheck{name: name, severities: severities} }
}

func testRoot() model.Node {
	return model.NewDataType("dt-party", "Party", model.PrimitiveNone)
}

func TestNewEngine_RequiresChecks(t *testing.T) {
	_, err := NewEngine(Config{}, nil)
	assert.Error(t, err)
}

func TestNewEngine_RejectsBadConfig(t *testing.T) {
	_, err := NewEngine(Config{Mode: "permissive"}, []CheckFactory{factoryFor("noop")})
	assert.Error(t, err)
}

func TestEngine_Evaluate_Decision(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		severities []diag.Severity
		accepted   bool
	}{
		{
			name:       "lax accepts warnings",
			cfg:        Config{Mode: ModeLax, Threshold: diag.SeverityWarning},
			severities: []diag.Severity{diag.SeverityWarning, diag.SeverityWarning},
			accepted:   true,
		},
		{
			name:       "lax rejects errors",
			cfg:        Config{Mode: ModeLax, Threshold: diag.SeverityWarning},
			severities: []diag.Severity{diag.SeverityError},
			accepted:   false,
		},
		{
			name:       "strict rejects warnings at warning threshold",
			cfg:        Config{Mode: ModeStrict, Threshold: diag.SeverityWarning},
			severities: []diag.Severity{diag.SeverityWarning},
			accepted:   false,
		},
		{
			name:       "strict ignores messages below threshold",
			cfg:        Config{Mode: ModeStrict, Threshold: diag.SeverityError},
			severities: []diag.Severity{diag.SeverityWarning, diag.SeverityInfo},
			accepted:   true,
		},
		{
			name:       "strict info threshold rejects infos",
			cfg:        Config{Mode: ModeStrict, Threshold: diag.SeverityInfo},
			severities: []diag.Severity{diag.SeverityInfo},
			accepted:   false,
		},
		{
			name:       "lax error threshold ignores warnings entirely",
			cfg:        Config{Mode: ModeLax, Threshold: diag.SeverityError},
			severities: []diag.Severity{diag.SeverityWarning},
			accepted:   true,
		},
		{
			name:       "clean tree accepted in both modes",
			cfg:        Config{Mode: ModeStrict, Threshold: diag.SeverityInfo},
			severities: nil,
			accepted:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(tt.cfg, []CheckFactory{factoryFor("stub", tt.severities...)})
			require.NoError(t, err)

			outcome, err := engine.Evaluate(context.Background(), testRoot(), "validate")
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, outcome.Accepted)
		})
	}
}

func TestEngine_Evaluate_Outcome(t *testing.T) {
	engine, err := NewEngine(
		Config{Mode: ModeLax},
		[]CheckFactory{
			factoryFor("clean"),
			factoryFor("noisy", diag.SeverityError),
		},
	)
	require.NoError(t, err)

	outcome, err := engine.Evaluate(context.Background(), testRoot(), "publish")
	require.NoError(t, err)

	assert.NotEmpty(t, outcome.RunID)
	assert.Equal(t, "dt-party", outcome.SubjectID)
	assert.Equal(t, model.KindDataType, outcome.SubjectKind)
	assert.False(t, outcome.Accepted)

	// Both trees come back complete and in check order even on rejection.
	require.Len(t, outcome.Reports, 2)
	assert.Equal(t, "clean", outcome.Reports[0].Check)
	assert.Equal(t, "noisy", outcome.Reports[1].Check)
	assert.Equal(t, 1, outcome.Reports[1].Result.Count(diag.SeverityError))
}

func TestEngine_Evaluate_DistinctRunIDs(t *testing.T) {
	engine, err := NewEngine(Config{}, []CheckFactory{factoryFor("stub")})
	require.NoError(t, err)

	first, err := engine.Evaluate(context.Background(), testRoot(), "validate")
	require.NoError(t, err)
	second, err := engine.Evaluate(context.Background(), testRoot(), "validate")
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestEngine_Evaluate_NilRoot(t *testing.T) {
	engine, err := NewEngine(Config{}, []CheckFactory{factoryFor("stub")})
	require.NoError(t, err)

	_, err = engine.Evaluate(context.Background(), nil, "validate")
	assert.Error(t, err)
}

func TestEngine_EvaluateWith_EmptySubsetAccepts(t *testing.T) {
	engine, err := NewEngine(Config{Mode: ModeStrict, Threshold: diag.SeverityInfo},
		[]CheckFactory{factoryFor("stub", diag.SeverityError)})
	require.NoError(t, err)

	outcome, err := engine.EvaluateWith(context.Background(), testRoot(), "validate", nil)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Empty(t, outcome.Reports)
}

func TestEngine_Evaluate_EmitsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	engine, err := NewEngine(
		Config{Mode: ModeLax},
		[]CheckFactory{factoryFor("noisy", diag.SeverityError)},
		WithTracer(provider.Tracer("test")),
	)
	require.NoError(t, err)

	outcome, err := engine.Evaluate(context.Background(), testRoot(), "validate")
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "policy.evaluate", spans[0].Name())

	// The span opens before the checks run and closes after the decision, so
	// it must cover at least the measured evaluation time.
	spanDuration := spans[0].EndTime().Sub(spans[0].StartTime())
	assert.GreaterOrEqual(t, spanDuration, outcome.Duration)
}
