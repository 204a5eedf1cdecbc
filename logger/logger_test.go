package logger

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/catlog/category"
	"github.com/kbukum/catlog/record"
)

var fixedTime = time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC)

type countingTransport struct {
	mu      sync.Mutex
	records []record.Record
}

func (c *countingTransport) Write(rec record.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return nil
}

func (c *countingTransport) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func (c *countingTransport) last() record.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records[len(c.records)-1]
}

type failingTransport struct{ calls atomic.Int32 }

func (f *failingTransport) Write(record.Record) error {
	f.calls.Add(1)
	return errors.New("sink down")
}

type panickingTransport struct{}

func (panickingTransport) Write(record.Record) error { panic("sink exploded") }

type closingTransport struct {
	countingTransport
	closed bool
	err    error
}

func (c *closingTransport) Close() error {
	c.closed = true
	return c.err
}

func newTestLogger(t *testing.T, level string) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	l, err := New(Config{MinLevel: level, EnableConsole: true},
		WithStdout(&stdout),
		WithStderr(&stderr),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "rec-1" }),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l, &stdout, &stderr
}

func TestSuppressedSeveritiesProduceNothing(t *testing.T) {
	l, stdout, stderr := newTestLogger(t, "warn")
	counter := &countingTransport{}
	l.AddTransport(counter)

	api := l.Category(category.API)
	api.Debug("ping")
	api.Info("ping", map[string]any{"n": 1})
	l.Debug("generic")
	l.Info("generic")
	l.Success("done")

	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("expected no console output, got stdout=%q stderr=%q", stdout, stderr)
	}
	if counter.count() != 0 {
		t.Errorf("expected no transport calls, got %d", counter.count())
	}
}

func TestAcceptedSeveritiesDeliverExactlyOnce(t *testing.T) {
	severities := []record.Severity{record.Debug, record.Info, record.Warn, record.Error}
	for _, sev := range severities {
		t.Run(sev.String(), func(t *testing.T) {
			l, stdout, stderr := newTestLogger(t, "debug")
			t1, t2 := &countingTransport{}, &countingTransport{}
			l.AddTransport(t1)
			l.AddTransport(t2)

			l.Category(category.Storage).Log(sev, "saved", nil, map[string]any{"key": "k"})

			lines := strings.Count(stdout.String(), "\n") + strings.Count(stderr.String(), "\n")
			if lines < 1 {
				t.Fatalf("expected a console write")
			}
			if sev >= record.Warn && stdout.Len() != 0 {
				t.Errorf("expected %s on stderr only, stdout=%q", sev, stdout)
			}
			if sev < record.Warn && stderr.Len() != 0 {
				t.Errorf("expected %s on stdout only, stderr=%q", sev, stderr)
			}
			for i, tr := range []*countingTransport{t1, t2} {
				if tr.count() != 1 {
					t.Fatalf("transport %d: expected 1 record, got %d", i, tr.count())
				}
				rec := tr.last()
				if rec.Category() != category.Storage || rec.Severity() != sev || rec.Message() != "saved" {
					t.Errorf("transport %d got wrong record: %+v", i, rec)
				}
				data, _ := rec.Data().(map[string]any)
				if data["key"] != "k" {
					t.Errorf("transport %d got wrong data: %v", i, rec.Data())
				}
				if rec.Error() != nil {
					t.Errorf("transport %d: expected no error, got %+v", i, rec.Error())
				}
			}
		})
	}
}

func TestFilteringIsMonotonic(t *testing.T) {
	floors := []record.Severity{record.Debug, record.Info, record.Warn, record.Error, record.None}
	all := []record.Severity{record.Debug, record.Info, record.Warn, record.Error}
	for _, floor := range floors {
		l, _, _ := newTestLogger(t, "debug")
		l.SetMinSeverity(floor)
		for _, s := range all {
			for _, lower := range all {
				if lower < s && !l.Enabled(s) && l.Enabled(lower) {
					t.Errorf("floor %s: %s suppressed but lower %s enabled", floor, s, lower)
				}
			}
			if got, want := l.Enabled(s), s >= floor; got != want {
				t.Errorf("floor %s: Enabled(%s) = %v, want %v", floor, s, got, want)
			}
		}
	}
}

func TestErrorOverloadResolution(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	counter := &countingTransport{}
	l.AddTransport(counter)
	api := l.Category(category.API)
	boom := errors.New("boom")
	ctx := map[string]any{"ctx": 1}

	api.Error("msg", Err(boom), ctx)
	rec := counter.last()
	if rec.Error() == nil || rec.Error().Message != "boom" {
		t.Fatalf("expected error 'boom', got %+v", rec.Error())
	}
	if data, _ := rec.Data().(map[string]any); data["ctx"] != 1 {
		t.Errorf("expected data ctx=1, got %v", rec.Data())
	}

	api.Error("msg", Data(ctx))
	rec = counter.last()
	if rec.Error() != nil {
		t.Errorf("expected no error, got %+v", rec.Error())
	}
	if data, _ := rec.Data().(map[string]any); data["ctx"] != 1 {
		t.Errorf("expected data ctx=1, got %v", rec.Data())
	}

	api.Error("msg", Data(ctx), map[string]any{"ignored": true})
	if data, _ := counter.last().Data().(map[string]any); data["ignored"] != nil {
		t.Errorf("expected extra data to be ignored after Data(), got %v", counter.last().Data())
	}

	api.Error("msg", nil, ctx)
	rec = counter.last()
	if rec.Error() != nil {
		t.Errorf("expected no error for nil arg, got %+v", rec.Error())
	}
	if data, _ := rec.Data().(map[string]any); data["ctx"] != 1 {
		t.Errorf("expected data ctx=1 for nil arg, got %v", rec.Data())
	}

	api.Error("msg", Err(boom))
	if counter.last().HasData() {
		t.Errorf("expected no data, got %v", counter.last().Data())
	}
}

func TestVariadicDataCollapse(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	counter := &countingTransport{}
	l.AddTransport(counter)
	ui := l.Category(category.UI)

	ui.Info("none")
	if counter.last().HasData() {
		t.Errorf("expected nil data, got %v", counter.last().Data())
	}
	ui.Info("one", "x")
	if counter.last().Data() != "x" {
		t.Errorf("expected 'x', got %v", counter.last().Data())
	}
	ui.Info("many", "x", 2)
	many, ok := counter.last().Data().([]any)
	if !ok || len(many) != 2 || many[0] != "x" || many[1] != 2 {
		t.Errorf("expected [x 2], got %v", counter.last().Data())
	}
}

func TestTransportIsolation(t *testing.T) {
	l, _, stderr := newTestLogger(t, "debug")
	failing := &failingTransport{}
	good := &countingTransport{}
	l.AddTransport(failing)
	l.AddTransport(panickingTransport{})
	l.AddTransport(good)

	l.Category(category.Sync).Info("tick")
	l.Category(category.Sync).Info("tock")

	if good.count() != 2 {
		t.Fatalf("expected well-behaved transport to receive 2 records, got %d", good.count())
	}
	if failing.calls.Load() != 2 {
		t.Errorf("expected failing transport to keep being called, got %d calls", failing.calls.Load())
	}
	out := stderr.String()
	if !strings.Contains(out, "[catlog] transport *logger.failingTransport failed: sink down") {
		t.Errorf("expected failure report, got %q", out)
	}
	if !strings.Contains(out, "[catlog] transport logger.panickingTransport failed: panic: sink exploded") {
		t.Errorf("expected panic report, got %q", out)
	}
}

func TestConcreteScenario(t *testing.T) {
	l, stdout, stderr := newTestLogger(t, "warn")
	counter := &countingTransport{}
	l.AddTransport(counter)
	api := l.Category(category.API)

	api.Debug("ping")
	if stdout.Len()+stderr.Len() != 0 || counter.count() != 0 {
		t.Fatalf("expected debug to be suppressed")
	}

	api.Error("timeout", Err(errors.New("boom")), map[string]any{"endpoint": "/x"})
	out := stderr.String()
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "API") || !strings.Contains(lines[0], "timeout") {
		t.Errorf("primary line missing category or message: %q", lines[0])
	}
	rest := strings.Join(lines[1:], "\n")
	if !strings.Contains(rest, `"endpoint": "/x"`) {
		t.Errorf("expected data block, got %q", rest)
	}
	if !strings.Contains(rest, "errorString: boom") || !strings.Contains(rest, "TestConcreteScenario") {
		t.Errorf("expected stack block for boom, got %q", rest)
	}
	if counter.count() != 1 {
		t.Errorf("expected counter 1, got %d", counter.count())
	}
}

func TestConsoleFormatAndToggles(t *testing.T) {
	l, stdout, _ := newTestLogger(t, "debug")
	l.SetTimestamps(true)
	l.Category(category.Auth).Info("signed in")
	if got := stdout.String(); got != "[09:30:15] 🔐 Auth signed in\n" {
		t.Errorf("unexpected console line %q", got)
	}

	stdout.Reset()
	l.SetTimestamps(false)
	l.SetColors(true)
	l.Category(category.Auth).Info("signed in")
	if !strings.Contains(stdout.String(), "\x1b[") {
		t.Errorf("expected colored output, got %q", stdout.String())
	}

	stdout.Reset()
	counter := &countingTransport{}
	l.AddTransport(counter)
	l.SetConsoleEnabled(false)
	l.Category(category.Auth).Info("quiet")
	if stdout.Len() != 0 {
		t.Errorf("expected console disabled, got %q", stdout.String())
	}
	if counter.count() != 1 {
		t.Errorf("expected transports to still receive records, got %d", counter.count())
	}
}

func TestStaticContextMerge(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	counter := &countingTransport{}
	l.AddTransport(counter)
	l.SetStaticContext(map[string]any{"app": "checkout", "env": "prod"})
	pay := l.Category(category.Payment)

	pay.Info("no data")
	if data, _ := counter.last().Data().(map[string]any); data["app"] != "checkout" || len(data) != 2 {
		t.Errorf("expected static context as data, got %v", counter.last().Data())
	}

	pay.Info("map data", map[string]any{"env": "staging", "amount": 10})
	data, _ := counter.last().Data().(map[string]any)
	if data["env"] != "staging" || data["app"] != "checkout" || data["amount"] != 10 {
		t.Errorf("expected merged data with call-site precedence, got %v", data)
	}

	pay.Info("scalar data", 42)
	data, _ = counter.last().Data().(map[string]any)
	if data["data"] != 42 || data["app"] != "checkout" {
		t.Errorf("expected scalar under 'data', got %v", data)
	}

	l.SetStaticContext(nil)
	pay.Info("cleared")
	if counter.last().HasData() {
		t.Errorf("expected no data after clearing static context, got %v", counter.last().Data())
	}
}

func TestStaticContextIsCopied(t *testing.T) {
	static := map[string]any{"app": "a"}
	l, _, _ := newTestLogger(t, "debug")
	counter := &countingTransport{}
	l.AddTransport(counter)
	l.SetStaticContext(static)
	static["app"] = "mutated"

	l.Info("x")
	if data, _ := counter.last().Data().(map[string]any); data["app"] != "a" {
		t.Errorf("static context was aliased: %v", data)
	}
}

func TestGenericEntryPoints(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	counter := &countingTransport{}
	l.AddTransport(counter)

	tests := []struct {
		call func()
		cat  category.Category
		sev  record.Severity
	}{
		{func() { l.Debug("d") }, category.Info, record.Debug},
		{func() { l.Info("i") }, category.Info, record.Info},
		{func() { l.Warn("w") }, category.Warning, record.Warn},
		{func() { l.Error("e", nil) }, category.Error, record.Error},
		{func() { l.Success("s") }, category.Success, record.Info},
	}
	for _, tc := range tests {
		tc.call()
		rec := counter.last()
		if rec.Category() != tc.cat || rec.Severity() != tc.sev {
			t.Errorf("expected %s/%s, got %s/%s", tc.cat, tc.sev, rec.Category(), rec.Severity())
		}
	}
}

func TestRecordMetadata(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	counter := &countingTransport{}
	l.AddTransport(counter)
	l.Info("x")
	rec := counter.last()
	if rec.ID() != "rec-1" {
		t.Errorf("expected id 'rec-1', got %q", rec.ID())
	}
	if !rec.Time().Equal(fixedTime) {
		t.Errorf("expected time %v, got %v", fixedTime, rec.Time())
	}
}

func TestAddRemoveTransport(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	a, b := &countingTransport{}, &countingTransport{}

	l.AddTransport(a)
	l.AddTransport(a)
	removeB := l.AddTransport(b)
	if got := len(l.Transports()); got != 2 {
		t.Fatalf("expected duplicate registration to be ignored, got %d transports", got)
	}

	l.Info("one")
	if a.count() != 1 {
		t.Errorf("expected at-most-once delivery, got %d", a.count())
	}

	if !l.RemoveTransport(a) {
		t.Error("expected RemoveTransport to report removal")
	}
	if l.RemoveTransport(a) {
		t.Error("expected second RemoveTransport to report false")
	}
	removeB()
	l.Info("two")
	if a.count() != 1 || b.count() != 1 {
		t.Errorf("expected removed transports to stop receiving, got a=%d b=%d", a.count(), b.count())
	}
}

func TestTransportFuncRemoval(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	var calls int
	fn := TransportFunc(func(record.Record) error { calls++; return nil })

	remove := l.AddTransport(fn)
	l.AddTransport(fn)
	if l.RemoveTransport(fn) {
		t.Error("expected RemoveTransport to refuse non-comparable transports")
	}
	l.Info("x")
	if calls != 2 {
		t.Errorf("expected func transports to be registered twice, got %d calls", calls)
	}
	remove()
	if len(l.Transports()) != 1 {
		t.Errorf("expected handle to remove one registration, got %d left", len(l.Transports()))
	}
}

func TestDeliveryOrder(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		l.AddTransport(TransportFunc(func(rec record.Record) error {
			order = append(order, name+":"+rec.Message())
			return nil
		}))
	}
	l.Info("a")
	l.Info("b")
	want := "first:a second:a third:a first:b second:b third:b"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConcurrentMutationAndDispatch(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	l.SetConsoleEnabled(false)
	stable := &countingTransport{}
	l.AddTransport(stable)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				l.Category(category.Network).Info("msg")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				remove := l.AddTransport(&countingTransport{})
				l.SetMinSeverity(record.Debug)
				remove()
			}
		}()
	}
	wg.Wait()
	if stable.count() != 800 {
		t.Errorf("expected 800 records on the stable transport, got %d", stable.count())
	}
}

func TestClose(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	ok := &closingTransport{}
	bad := &closingTransport{err: errors.New("flush failed")}
	l.AddTransport(ok)
	l.AddTransport(bad)
	l.AddTransport(&countingTransport{})

	err := l.Close()
	if !ok.closed || !bad.closed {
		t.Error("expected every closer to be closed")
	}
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected joined close error, got %v", err)
	}
	if len(l.Transports()) != 3 {
		t.Error("expected transports to stay registered after Close")
	}
}

func TestCategoryPanicsOnUnknown(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown category")
		}
	}()
	l.Category(category.Category(200))
}

func TestCategoryHandlesAreShared(t *testing.T) {
	l, _, _ := newTestLogger(t, "debug")
	if l.Category(category.API) != l.Category(category.API) {
		t.Error("expected the same handle for the same category")
	}
	if l.Category(category.API).Logger() != l {
		t.Error("expected handle to point back to its logger")
	}
}

func TestUnserializableDataDoesNotPanic(t *testing.T) {
	l, stdout, _ := newTestLogger(t, "debug")
	m := map[string]any{}
	m["self"] = m
	l.Category(category.Cache).Info("cyclic", m)
	if !strings.Contains(stdout.String(), "[unserializable") {
		t.Errorf("expected placeholder, got %q", stdout.String())
	}
}

type quotaError struct{ limit int }

func (e *quotaError) Error() string { return fmt.Sprintf("quota %d exceeded", e.limit) }

func TestTypedNilErrorIsRecorded(t *testing.T) {
	l, _, stderr := newTestLogger(t, "debug")
	counter := &countingTransport{}
	l.AddTransport(counter)

	var err *quotaError
	l.Category(category.API).Error("boom", Err(err))

	if counter.count() != 1 {
		t.Fatalf("expected 1 record, got %d", counter.count())
	}
	info := counter.last().Error()
	if info == nil || !strings.HasPrefix(info.Message, "[error message unavailable: *logger.quotaError:") {
		t.Errorf("expected placeholder error message, got %+v", info)
	}
	if !strings.Contains(stderr.String(), "[error message unavailable") {
		t.Errorf("expected placeholder on the console, got %q", stderr.String())
	}
}

func TestLogIgnoresNoneSeverity(t *testing.T) {
	l, stdout, stderr := newTestLogger(t, "debug")
	l.Category(category.API).Log(record.None, "never", nil)
	if stdout.Len()+stderr.Len() != 0 {
		t.Error("expected NONE severity to emit nothing")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{MinLevel: "verbose"})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	if !strings.Contains(err.Error(), "min_level must be one of") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultLogger(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })
	var stdout bytes.Buffer
	custom := MustNew(Config{MinLevel: "debug", EnableConsole: true}, WithStdout(&stdout))
	SetDefault(custom)

	if Default() != custom {
		t.Fatal("expected SetDefault to replace the default logger")
	}
	Info("hello")
	For(category.API).Debug("ping")
	if got := strings.Count(stdout.String(), "\n"); got != 2 {
		t.Errorf("expected 2 lines through the default logger, got %d: %q", got, stdout.String())
	}

	SetDefault(nil)
	if Default() == custom || Default() == nil {
		t.Error("expected a fresh default logger after reset")
	}
}

func TestDefaultHonorsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	SetDefault(nil)
	t.Cleanup(func() { SetDefault(nil) })
	if Default().MinSeverity() != record.Error {
		t.Errorf("expected LOG_LEVEL=error to set the floor, got %s", Default().MinSeverity())
	}
}

func TestFields(t *testing.T) {
	f := Fields("op", "save", "id", 42, 7, "skipped", "dangling")
	if f["op"] != "save" || f["id"] != 42 {
		t.Errorf("unexpected fields %v", f)
	}
	if len(f) != 2 {
		t.Errorf("expected non-string keys and dangling keys to be skipped, got %v", f)
	}
}

func ExampleCategoryLogger_Error() {
	var out bytes.Buffer
	l := MustNew(Config{MinLevel: "warn", EnableConsole: true}, WithStderr(&out))
	api := l.Category(category.API)

	api.Debug("ping")
	api.Error("timeout", Data(Fields("endpoint", "/x")))

	fmt.Print(out.String())
	// Output:
	// 🌐 API timeout
	// {
	//   "endpoint": "/x"
	// }
}
