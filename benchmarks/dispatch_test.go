package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/randalmurphal/taghooks/pkg/hooks"
	"github.com/randalmurphal/taghooks/pkg/hooks/shortcode"
)

// identity returns its first argument unchanged.
func identity(_ context.Context, args ...any) (any, error) {
	return args[0], nil
}

// buildChain registers n filters on tag spread over five priorities.
func buildChain(n int) *hooks.Hooks {
	h := hooks.New()
	for i := 0; i < n; i++ {
		h.AddFilter("t", hooks.Named(fmt.Sprintf("f%d", i), identity), hooks.WithPriority(i%5))
	}
	return h
}

// BenchmarkAddFilter_Named measures registering a named callable.
func BenchmarkAddFilter_Named(b *testing.B) {
	h := hooks.New()
	c := hooks.Named("f", identity)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.AddFilter("t", c)
	}
}

// BenchmarkAddFilter_Closure measures registering fresh closures.
func BenchmarkAddFilter_Closure(b *testing.B) {
	for i := 0; i < b.N; i++ {
		h := hooks.New()
		h.AddFilter("t", hooks.Closure(identity))
	}
}

// BenchmarkApplyFilters_NoEntries measures the passthrough path.
func BenchmarkApplyFilters_NoEntries(b *testing.B) {
	h := hooks.New()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.ApplyFilters(ctx, "t", i)
	}
}

// BenchmarkApplyFilters_1 runs a single filter.
func BenchmarkApplyFilters_1(b *testing.B) {
	benchmarkApplyFilters(b, 1)
}

// BenchmarkApplyFilters_10 runs ten filters.
func BenchmarkApplyFilters_10(b *testing.B) {
	benchmarkApplyFilters(b, 10)
}

// BenchmarkApplyFilters_100 runs a hundred filters.
func BenchmarkApplyFilters_100(b *testing.B) {
	benchmarkApplyFilters(b, 100)
}

func benchmarkApplyFilters(b *testing.B, n int) {
	h := buildChain(n)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.ApplyFilters(ctx, "t", i)
	}
}

// BenchmarkDoActionRefArray_10 checks that repeated triggers reuse the sort.
func BenchmarkDoActionRefArray_10(b *testing.B) {
	h := buildChain(10)
	ctx := context.Background()
	args := []any{0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.DoActionRefArray(ctx, "t", args)
	}
}

// BenchmarkApplyFilters_WithObserver adds an "all" observer to every trigger.
func BenchmarkApplyFilters_WithObserver(b *testing.B) {
	h := buildChain(10)
	h.AddAction(hooks.AllTag, hooks.Named("observer", identity))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.ApplyFilters(ctx, "t", i)
	}
}

// BenchmarkShortcodeRun expands three shortcodes in a short document.
func BenchmarkShortcodeRun(b *testing.B) {
	p := shortcode.New(hooks.New())
	p.Add("b", hooks.Named("b", shortcode.Func(func(_ context.Context, _ shortcode.Attrs, content, _ string) (string, error) {
		return "<b>" + content + "</b>", nil
	})))
	text := `Some [b]bold[/b] text, [b x=1 y="two"]more[/b] and [[b]] escaped [b /].`
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Run(ctx, text)
	}
}
