package richtext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var styleComparer = cmp.Comparer(func(a, b Style) bool { return a == b })

func mustParagraph(t *testing.T, runs ...StyledText) *StyledParagraph {
	t.Helper()
	p, err := NewParagraphFromRuns(runs...)
	require.NoError(t, err)
	return p
}

func assertRuns(t *testing.T, p *StyledParagraph, want ...StyledText) {
	t.Helper()
	if diff := cmp.Diff(want, p.Runs(), styleComparer); diff != "" {
		t.Errorf("文本块不一致 (-want +got):\n%s", diff)
	}
}

func TestStyledParagraph_AddInsert(t *testing.T) {
	a := NewStyledText("a", DefaultStyle())
	b := NewStyledText("b", DefaultStyle().WithBoldToggled())
	c := NewStyledText("c", DefaultStyle().WithItalicToggled())

	p := NewParagraph()
	require.NoError(t, p.Add(b))
	require.NoError(t, p.Prepend(a))
	require.NoError(t, p.Insert(2, c))
	assertRuns(t, p, a, b, c)
	assert.Equal(t, "abc", p.Text())

	assert.ErrorIs(t, p.Insert(4, a), ErrIndexOutOfRange)
	assert.ErrorIs(t, p.Insert(-1, a), ErrIndexOutOfRange)
	assert.ErrorIs(t, p.Add(NewStyledText("", DefaultStyle())), ErrEmptyRun)
	assert.ErrorIs(t, p.Insert(0, NewStyledText("", DefaultStyle())), ErrEmptyRun)
	assert.Equal(t, 3, p.Len())

	run, ok := p.Run(1)
	assert.True(t, ok)
	assert.Equal(t, "b", run.Text)
	_, ok = p.Run(3)
	assert.False(t, ok)
}

func TestStyledParagraph_RunsIsCopy(t *testing.T) {
	p := mustParagraph(t, NewStyledText("abc", DefaultStyle()))
	runs := p.Runs()
	runs[0].Text = "changed"
	assert.Equal(t, "abc", p.Text())

	clone := p.Clone()
	require.NoError(t, clone.Modify(DefaultStyle().WithBoldToggled(), "b"))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestStyledParagraph_TaggedTextEmpty(t *testing.T) {
	assert.Equal(t, "", NewParagraph().TaggedText())
}

func TestStyledParagraph_Modify(t *testing.T) {
	original := DefaultStyle()
	bold := DefaultStyle().WithBoldToggled()

	tests := []struct {
		name  string
		runs  []StyledText
		chunk string
		want  []StyledText
	}{
		{
			name:  "interior substring splits into three",
			runs:  []StyledText{{"This is a test.", original}},
			chunk: "is a",
			want:  []StyledText{{"This ", original}, {"is a", bold}, {" test.", original}},
		},
		{
			name:  "whole run is replaced",
			runs:  []StyledText{{"exact", original}},
			chunk: "exact",
			want:  []StyledText{{"exact", bold}},
		},
		{
			name:  "prefix",
			runs:  []StyledText{{"Hello world", original}},
			chunk: "Hello",
			want:  []StyledText{{"Hello", bold}, {" world", original}},
		},
		{
			name:  "suffix",
			runs:  []StyledText{{"Hello world", original}},
			chunk: "world",
			want:  []StyledText{{"Hello ", original}, {"world", bold}},
		},
		{
			name:  "only the first matching run changes",
			runs:  []StyledText{{"one dup", original}, {" two dup", original}},
			chunk: "dup",
			want:  []StyledText{{"one ", original}, {"dup", bold}, {" two dup", original}},
		},
		{
			name:  "first occurrence inside the run",
			runs:  []StyledText{{"aXaXa", original}},
			chunk: "X",
			want:  []StyledText{{"a", original}, {"X", bold}, {"aXa", original}},
		},
		{
			name:  "multi-byte text",
			runs:  []StyledText{{"héllo wörld", original}},
			chunk: "wö",
			want:  []StyledText{{"héllo ", original}, {"wö", bold}, {"rld", original}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParagraph(t, tt.runs...)
			before := p.Text()

			require.NoError(t, p.Modify(bold, tt.chunk))
			assertRuns(t, p, tt.want...)
			assert.Equal(t, before, p.Text(), "文本内容必须保持不变")
		})
	}
}

func TestStyledParagraph_ModifySpanningRequiredForBoundaries(t *testing.T) {
	p := mustParagraph(t,
		NewStyledText("Part1 ", DefaultStyle()),
		NewStyledText("Part2", DefaultStyle().WithItalicToggled()),
	)
	err := p.Modify(DefaultStyle().WithBoldToggled(), "t1 P")
	assert.ErrorIs(t, err, ErrChunkNotFound)
	assert.Equal(t, 2, p.Len())
}

func TestStyledParagraph_ModifySpanning(t *testing.T) {
	styleA := DefaultStyle().WithSize(10)
	styleB := DefaultStyle().WithItalicToggled()
	styleC := DefaultStyle().WithUnderline(UnderlineSingle)
	updated := DefaultStyle().WithBoldToggled()

	tests := []struct {
		name  string
		runs  []StyledText
		chunk string
		want  []StyledText
	}{
		{
			name:  "crosses a boundary",
			runs:  []StyledText{{"Part1 ", styleA}, {"Part2", styleB}},
			chunk: "t1 P",
			want:  []StyledText{{"Par", styleA}, {"t1 P", updated}, {"art2", styleB}},
		},
		{
			name:  "consumes every run",
			runs:  []StyledText{{"ab", styleA}, {"cd", styleB}, {"ef", styleC}},
			chunk: "abcdef",
			want:  []StyledText{{"abcdef", updated}},
		},
		{
			name:  "interior run styles are discarded",
			runs:  []StyledText{{"xab", styleA}, {"cd", styleB}, {"efy", styleC}},
			chunk: "abcdef",
			want:  []StyledText{{"x", styleA}, {"abcdef", updated}, {"y", styleC}},
		},
		{
			name:  "single run behaves like Modify",
			runs:  []StyledText{{"This is a test.", styleA}},
			chunk: "is a",
			want:  []StyledText{{"This ", styleA}, {"is a", updated}, {" test.", styleA}},
		},
		{
			name:  "ends on a boundary",
			runs:  []StyledText{{"abc", styleA}, {"def", styleB}},
			chunk: "bc",
			want:  []StyledText{{"a", styleA}, {"bc", updated}, {"def", styleB}},
		},
		{
			name:  "starts on a boundary",
			runs:  []StyledText{{"abc", styleA}, {"def", styleB}},
			chunk: "de",
			want:  []StyledText{{"abc", styleA}, {"de", updated}, {"f", styleB}},
		},
		{
			name:  "multi-byte across runs",
			runs:  []StyledText{{"日本", styleA}, {"語です", styleB}},
			chunk: "本語",
			want:  []StyledText{{"日", styleA}, {"本語", updated}, {"です", styleB}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParagraph(t, tt.runs...)
			before := p.Text()

			require.NoError(t, p.ModifySpanning(updated, tt.chunk))
			assertRuns(t, p, tt.want...)
			assert.Equal(t, before, p.Text(), "文本内容必须保持不变")
			for _, run := range p.Runs() {
				assert.NotEmpty(t, run.Text, "不允许出现空文本块")
			}
		})
	}
}

func TestStyledParagraph_ModifyFailuresPreserveState(t *testing.T) {
	runs := []StyledText{
		NewStyledText("Part1 ", DefaultStyle()),
		NewStyledText("Part2", DefaultStyle().WithItalicToggled()),
	}
	bold := DefaultStyle().WithBoldToggled()

	modifiers := map[string]func(p *StyledParagraph, chunk string) error{
		"Modify": func(p *StyledParagraph, chunk string) error {
			return p.Modify(bold, chunk)
		},
		"ModifySpanning": func(p *StyledParagraph, chunk string) error {
			return p.ModifySpanning(bold, chunk)
		},
	}

	for name, modify := range modifiers {
		t.Run(name+" not found", func(t *testing.T) {
			p := mustParagraph(t, runs...)
			err := modify(p, "absent")
			assert.ErrorIs(t, err, ErrChunkNotFound)
			assertRuns(t, p, runs...)

			var merr *ModifyError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, "absent", merr.Chunk)
		})

		t.Run(name+" empty chunk", func(t *testing.T) {
			p := mustParagraph(t, runs...)
			assert.ErrorIs(t, modify(p, ""), ErrEmptyChunk)
			assertRuns(t, p, runs...)

			assert.ErrorIs(t, modify(NewParagraph(), ""), ErrEmptyChunk)
		})

		t.Run(name+" invalid utf-8", func(t *testing.T) {
			p := mustParagraph(t, NewStyledText("é", DefaultStyle()))
			assert.ErrorIs(t, modify(p, "\xa9"), ErrChunkNotFound)
			assert.Equal(t, 1, p.Len())
		})
	}
}

func TestStyledParagraph_RepeatedEditsKeepText(t *testing.T) {
	p := mustParagraph(t,
		NewStyledText("The quick brown ", DefaultStyle()),
		NewStyledText("fox jumps", DefaultStyle().WithItalicToggled()),
		NewStyledText(" over the lazy dog", DefaultStyle().WithSize(9)),
	)
	full := p.Text()

	edits := []struct {
		chunk    string
		spanning bool
	}{
		{"quick", false},
		{"brown fox", true},
		{"jumps over", true},
		{"lazy", false},
		{"The quick brown fox jumps over the lazy dog", true},
	}
	for i, edit := range edits {
		style := DefaultStyle().WithSize(uint8(12 + i))
		var err error
		if edit.spanning {
			err = p.ModifySpanning(style, edit.chunk)
		} else {
			err = p.Modify(style, edit.chunk)
		}
		require.NoError(t, err, edit.chunk)
		assert.Equal(t, full, p.Text())
	}
	assert.Equal(t, 1, p.Len())
}

func TestStyledParagraph_Compact(t *testing.T) {
	plain := DefaultStyle()
	bold := DefaultStyle().WithBoldToggled()
	p := mustParagraph(t,
		NewStyledText("a", plain),
		NewStyledText("b", plain),
		NewStyledText("c", bold),
		NewStyledText("d", plain),
		NewStyledText("e", plain),
	)

	p.Compact()
	assertRuns(t, p,
		NewStyledText("ab", plain),
		NewStyledText("c", bold),
		NewStyledText("de", plain),
	)
}

func TestStyledParagraph_Descriptors(t *testing.T) {
	p := mustParagraph(t,
		NewStyledText("a", DefaultStyle()),
		NewStyledText("b", DefaultStyle().WithBoldToggled()),
	)
	ds := p.Descriptors()
	require.Len(t, ds, 2)
	assert.Equal(t, "a", ds[0].Text)
	assert.True(t, ds[1].Bold)
}

func TestStyledParagraph_Occurrences(t *testing.T) {
	d := DefaultStyle()
	p := mustParagraph(t,
		NewStyledText("to do, to ", d),
		NewStyledText("do", d.WithBoldToggled()),
	)

	assert.Equal(t, 2, p.Occurrences("to do"), "包括跨块出现")
	assert.Equal(t, 0, p.Occurrences(""))
	assert.Equal(t, 0, p.Occurrences("done"))

	require.NoError(t, p.Modify(d.WithItalicToggled(), "to do"))
	assert.Equal(t, 2, p.Occurrences("to do"), "改样式不改变出现次数")
}
