package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/jessevdk/go-flags"
	cuckoo "github.com/panmari/cuckoofilter"
	collectortrace "go.opentelemetry.io/proto/otlp/collector/trace/v1"

	"github.com/honeycombio/resultgen"
)

// Options defines the command line arguments
type Options struct {
	Port int `long:"port" description:"Port number to listen on for HTTP" default:"4318"`
}

// TraceSink counts the unique trace and span ids it has been sent, so a load
// test can check the ingestion side saw everything the generator claims to
// have produced.
type TraceSink struct {
	traces *cuckoo.Filter
	spans  *cuckoo.Filter
}

func NewTraceSink() *TraceSink {
	return &TraceSink{
		traces: cuckoo.NewFilter(1000000),
		spans:  cuckoo.NewFilter(100000000),
	}
}

func (t *TraceSink) record(traceID, spanID []byte) {
	if !t.traces.Lookup(traceID) {
		t.traces.Insert(traceID)
	}
	if !t.spans.Lookup(spanID) {
		t.spans.Insert(spanID)
	}
}

// processJSON handles the JSON export documents tracegen uploads, one
// resourceSpans tree per request body.
func (t *TraceSink) processJSON(body []byte) error {
	var data resultgen.TraceData
	if err := json.Unmarshal(body, &data); err != nil {
		return err
	}
	for _, resource := range data.ResourceSpans {
		for _, scope := range resource.ScopeSpans {
			for _, span := range scope.Spans {
				t.record([]byte(span.TraceID), []byte(span.SpanID))
			}
		}
	}
	return nil
}

// processProto handles protobuf-encoded OTLP export requests, for callers
// that point a real OTel SDK exporter at the sink.
func (t *TraceSink) processProto(body []byte) error {
	var req collectortrace.ExportTraceServiceRequest
	if err := proto.Unmarshal(body, &req); err != nil {
		return err
	}
	for _, resource := range req.GetResourceSpans() {
		for _, scope := range resource.GetScopeSpans() {
			for _, span := range scope.GetSpans() {
				t.record(span.GetTraceId(), span.GetSpanId())
			}
		}
	}
	return nil
}

func (t *TraceSink) handleTraces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var reader io.ReadCloser = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		var err error
		reader, err = gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Failed to decompress gzip data: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer reader.Close()
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// exporters commonly append parameters like charset=utf-8
	contentType := r.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	switch contentType {
	case "application/json":
		err = t.processJSON(body)
	default:
		// protobuf when the content type says so or is missing
		err = t.processProto(body)
	}
	if err != nil {
		http.Error(w, "Invalid trace data: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("{}"))
}

func initHTTPReceiver(ctx context.Context, opts Options, sink *TraceSink) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/traces", sink.handleTraces)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on port %d", opts.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		log.Println("Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during server shutdown: %v", err)
		}
	}()
}

func main() {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("Error parsing flags: %v", err)
	}

	log.Printf("Starting trace sink on port %d\n", opts.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := NewTraceSink()
	initHTTPReceiver(ctx, opts, sink)

	<-ctx.Done()

	fmt.Printf("\n%d traces, %d spans received this session\n", sink.traces.Count(), sink.spans.Count())
	log.Println("Shutting down gracefully...")
}
