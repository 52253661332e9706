package matcher

import (
	"testing"
)

func TestFindWithinRun(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		chunk string
		want  Span
		found bool
	}{
		{
			name:  "interior substring",
			texts: []string{"This is a test."},
			chunk: "is a",
			want:  Span{StartRun: 0, StartOffset: 5, EndRun: 0, EndOffset: 9},
			found: true,
		},
		{
			name:  "first run wins",
			texts: []string{"abc", "xabc"},
			chunk: "abc",
			want:  Span{StartRun: 0, StartOffset: 0, EndRun: 0, EndOffset: 3},
			found: true,
		},
		{
			name:  "later run",
			texts: []string{"hello ", "world"},
			chunk: "orl",
			want:  Span{StartRun: 1, StartOffset: 1, EndRun: 1, EndOffset: 4},
			found: true,
		},
		{
			name:  "spanning chunk is not found",
			texts: []string{"Part1 ", "Part2"},
			chunk: "t1 P",
			found: false,
		},
		{
			name:  "empty chunk",
			texts: []string{"abc"},
			chunk: "",
			found: false,
		},
		{
			name:  "multi-byte offsets",
			texts: []string{"héllo wörld"},
			chunk: "wörld",
			want:  Span{StartRun: 0, StartOffset: 7, EndRun: 0, EndOffset: 13},
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindWithinRun(tt.texts, tt.chunk)
			if found != tt.found {
				t.Fatalf("FindWithinRun() found = %v, 期望 %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("FindWithinRun() = %+v, 期望 %+v", got, tt.want)
			}
		})
	}
}

func TestFindAcrossRuns(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		chunk string
		want  Span
		found bool
	}{
		{
			name:  "crosses one boundary",
			texts: []string{"Part1 ", "Part2"},
			chunk: "t1 P",
			want:  Span{StartRun: 0, StartOffset: 3, EndRun: 1, EndOffset: 1},
			found: true,
		},
		{
			name:  "exact concatenation",
			texts: []string{"ab", "cd", "ef"},
			chunk: "abcdef",
			want:  Span{StartRun: 0, StartOffset: 0, EndRun: 2, EndOffset: 2},
			found: true,
		},
		{
			name:  "ends exactly at run boundary",
			texts: []string{"ab", "cd"},
			chunk: "b",
			want:  Span{StartRun: 0, StartOffset: 1, EndRun: 0, EndOffset: 2},
			found: true,
		},
		{
			name:  "starts exactly at run boundary",
			texts: []string{"ab", "cd"},
			chunk: "cd",
			want:  Span{StartRun: 1, StartOffset: 0, EndRun: 1, EndOffset: 2},
			found: true,
		},
		{
			name:  "not found",
			texts: []string{"ab", "cd"},
			chunk: "ac",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindAcrossRuns(tt.texts, tt.chunk)
			if found != tt.found {
				t.Fatalf("FindAcrossRuns() found = %v, 期望 %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("FindAcrossRuns() = %+v, 期望 %+v", got, tt.want)
			}
		})
	}
}

func TestSpan_SingleRun(t *testing.T) {
	if !(Span{StartRun: 2, EndRun: 2}).SingleRun() {
		t.Error("同一文本块内的片段应返回 true")
	}
	if (Span{StartRun: 0, EndRun: 1}).SingleRun() {
		t.Error("跨块片段应返回 false")
	}
}

func TestCountAcrossRuns(t *testing.T) {
	texts := []string{"ab", "ab", "a", "b"}
	if got := CountAcrossRuns(texts, "ab"); got != 3 {
		t.Errorf("CountAcrossRuns() = %d, 期望 3", got)
	}
	if got := CountAcrossRuns(texts, ""); got != 0 {
		t.Errorf("空片段计数应为 0，实际 %d", got)
	}
}
