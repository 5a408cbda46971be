package resultgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OTLP/JSON shapes, trimmed to the fields a collector trace export actually
// carries for spans. Nanosecond timestamps are decimal strings, the way the
// protobuf JSON mapping encodes 64-bit integers.
type TraceData struct {
	ResourceSpans []ResourceSpans `json:"resourceSpans"`
}

type ResourceSpans struct {
	Resource   Resource     `json:"resource"`
	ScopeSpans []ScopeSpans `json:"scopeSpans"`
}

type Resource struct {
	Attributes []KeyValue `json:"attributes"`
}

type ScopeSpans struct {
	Scope Scope  `json:"scope"`
	Spans []Span `json:"spans"`
}

type Scope struct {
	Name string `json:"name"`
}

type Span struct {
	TraceID           string     `json:"traceId"`
	SpanID            string     `json:"spanId"`
	ParentSpanID      string     `json:"parentSpanId"`
	Name              string     `json:"name"`
	Kind              int        `json:"kind"`
	StartTimeUnixNano string     `json:"startTimeUnixNano"`
	EndTimeUnixNano   string     `json:"endTimeUnixNano"`
	Attributes        []KeyValue `json:"attributes"`
	Status            struct{}   `json:"status"`
}

type KeyValue struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

type Value struct {
	StringValue string `json:"stringValue,omitempty"`
	IntValue    string `json:"intValue,omitempty"`
}

// otlpAttributes converts otel attributes to their OTLP/JSON encoding. Only
// the value types the generator emits are handled; everything else falls
// back to its string form.
func otlpAttributes(attrs []attribute.KeyValue) []KeyValue {
	out := make([]KeyValue, 0, len(attrs))
	for _, a := range attrs {
		kv := KeyValue{Key: string(a.Key)}
		switch a.Value.Type() {
		case attribute.INT64:
			kv.Value = Value{IntValue: strconv.FormatInt(a.Value.AsInt64(), 10)}
		default:
			kv.Value = Value{StringValue: a.Value.Emit()}
		}
		out = append(out, kv)
	}
	return out
}

var dbOperations = []string{"find", "insert", "update", "delete"}

// TraceGenerator writes .jsonl files where every line is one OTLP-style
// export document. When an uploader is configured, each document is also
// POSTed to the ingestion endpoint as it is generated.
type TraceGenerator struct {
	spansPerObject int
	outdir         string
	rng            Rng
	log            Logger
	uploader       *Uploader
}

func NewTraceGenerator(log Logger, opts *TraceOptions) (*TraceGenerator, error) {
	g := &TraceGenerator{
		spansPerObject: opts.SpansPerObject,
		outdir:         opts.OutputDir(),
		rng:            NewRng(opts.Global.Seed),
		log:            log,
	}
	if g.spansPerObject <= 0 {
		g.spansPerObject = 275
	}
	if opts.Upload.Host != "" {
		u, err := ParseHost(opts.Upload.Host, opts.Upload.Insecure)
		if err != nil {
			return nil, err
		}
		g.uploader = NewUploader(log, u)
	}
	return g, nil
}

func (g *TraceGenerator) traceID() string {
	var id trace.TraceID
	g.rng.Read(id[:])
	return id.String()
}

func (g *TraceGenerator) spanID() string {
	var id trace.SpanID
	g.rng.Read(id[:])
	return id.String()
}

// span generates a single span within the given trace.
func (g *TraceGenerator) span(traceID, parentSpanID string, spanNum int, startNano int64) Span {
	durationNano := int64(g.rng.Int(1000000, 100000000)) // 1ms to 100ms
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "mongodb"),
		attribute.String("db.operation", g.rng.Choice(dbOperations)),
		attribute.String("db.name", "test_db"),
		attribute.Int("span.num", spanNum),
	}
	return Span{
		TraceID:           traceID,
		SpanID:            g.spanID(),
		ParentSpanID:      parentSpanID,
		Name:              fmt.Sprintf("operation_%04d", spanNum),
		Kind:              g.rng.Int(1, 6),
		StartTimeUnixNano: strconv.FormatInt(startNano, 10),
		EndTimeUnixNano:   strconv.FormatInt(startNano+durationNano, 10),
		Attributes:        otlpAttributes(attrs),
	}
}

// TraceData generates one complete export document holding numSpans spans
// under a single trace id. Parentage is threaded loosely: after each span
// there is a 30% chance the next span nests under it, and half the rest of
// the time the chain resets to a new root. A parent id may therefore point
// at a span emitted later, or nowhere useful at all.
func (g *TraceGenerator) TraceData(numSpans int) TraceData {
	traceID := g.traceID()
	baseNano := time.Now().UnixNano()

	spans := make([]Span, 0, numSpans)
	parentSpanID := ""
	for i := 0; i < numSpans; i++ {
		span := g.span(traceID, parentSpanID, i, baseNano+int64(i)*1000000)
		spans = append(spans, span)
		if g.rng.Roll(0.3) {
			parentSpanID = span.SpanID
		} else if g.rng.Roll(0.5) {
			parentSpanID = ""
		}
	}

	resourceAttrs := []attribute.KeyValue{
		attribute.String("service.name", "test-service"),
		attribute.String("service.version", "1.0.0"),
		attribute.String("host.name", "test-host"),
	}
	return TraceData{
		ResourceSpans: []ResourceSpans{{
			Resource: Resource{Attributes: otlpAttributes(resourceAttrs)},
			ScopeSpans: []ScopeSpans{{
				Scope: Scope{Name: "test-tracer"},
				Spans: spans,
			}},
		}},
	}
}

// GenerateFile writes a single traces_NNNN.jsonl file and returns the number
// of spans it contains. Files hold at least one export document; beyond that
// the document count follows from spansPerFile / spansPerObject, mirroring
// the span density of real collector output.
func (g *TraceGenerator) GenerateFile(fileNum, spansPerFile int) (int, error) {
	numObjects := spansPerFile / g.spansPerObject
	if numObjects < 1 {
		numObjects = 1
	}

	lines := make([]string, 0, numObjects)
	spans := 0
	for i := 0; i < numObjects; i++ {
		buf, err := json.Marshal(g.TraceData(g.spansPerObject))
		if err != nil {
			return 0, err
		}
		if g.uploader != nil {
			if err := g.uploader.Upload(buf); err != nil {
				return 0, err
			}
		}
		lines = append(lines, string(buf))
		spans += g.spansPerObject
	}

	filename := filepath.Join(g.outdir, fmt.Sprintf("traces_%04d.jsonl", fileNum))
	if err := os.WriteFile(filename, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return 0, err
	}
	return spans, nil
}

// Run generates numFiles trace files, logging progress along the way and a
// final summary when done.
func (g *TraceGenerator) Run(numFiles, spansPerFile int) error {
	g.log.Info("Generating %d trace files with ~%d spans each...\n", numFiles, spansPerFile)
	g.log.Info("Total spans: ~%d\n", numFiles*spansPerFile)
	g.log.Info("Output directory: %s\n\n", g.outdir)

	if err := os.MkdirAll(g.outdir, 0755); err != nil {
		return err
	}

	start := time.Now()
	totalSpans := 0
	for fileNum := 0; fileNum < numFiles; fileNum++ {
		spans, err := g.GenerateFile(fileNum, spansPerFile)
		if err != nil {
			return err
		}
		totalSpans += spans
		if (fileNum+1)%5 == 0 {
			g.log.Info("  Generated %d/%d files...\n", fileNum+1, numFiles)
		}
	}

	g.log.Info("\nDone! Generated %d files in %.2fs\n", numFiles, time.Since(start).Seconds())
	g.log.Info("Total spans: %d\n", totalSpans)
	return nil
}
