package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Event
	}{
		{"plain letter", "a", RuneEvent('a')},
		{"plain digit", "5", RuneEvent('5')},
		{"plain symbol", "$", RuneEvent('$')},
		{"escape", "<Esc>", SpecialEvent(KeyEscape)},
		{"escape long", "<Escape>", SpecialEvent(KeyEscape)},
		{"enter", "<CR>", SpecialEvent(KeyEnter)},
		{"space", "<Space>", SpecialEvent(KeySpace)},
		{"less than", "<lt>", RuneEvent('<')},
		{"ctrl letter", "<C-v>", Event{Key: KeyRune, Rune: 'v', Modifiers: ModCtrl}},
		{"alt letter", "<A-x>", Event{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}},
		{"meta alias", "<M-x>", Event{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}},
		{"stacked mods", "<C-S-Left>", Event{Key: KeyLeft, Modifiers: ModCtrl | ModShift}},
		{"case insensitive name", "<esc>", SpecialEvent(KeyEscape)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.spec, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr error
	}{
		{"empty", "", ErrEmptySpec},
		{"unclosed bracket", "<Esc", ErrUnmatchedBracket},
		{"bare brackets", "<>", ErrInvalidSpec},
		{"unknown key", "<Bogus>", ErrInvalidSpec},
		{"unknown modifier", "<Q-x>", ErrInvalidSpec},
		{"multi rune", "ab", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	events, err := ParseSequence("d2w<Esc>x")
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	want := []Event{
		RuneEvent('d'),
		RuneEvent('2'),
		RuneEvent('w'),
		SpecialEvent(KeyEscape),
		RuneEvent('x'),
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if !events[i].Equals(want[i]) {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
}

func TestParseSequenceUnmatched(t *testing.T) {
	if _, err := ParseSequence("a<C-"); !errors.Is(err, ErrUnmatchedBracket) {
		t.Errorf("error = %v, want ErrUnmatchedBracket", err)
	}
}

func TestFormatSequenceRoundTrip(t *testing.T) {
	specs := []string{"dd", "ci\"", "<C-v>3jI-<Esc>", "f<Space>;;", "<lt>p"}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			events, err := ParseSequence(spec)
			if err != nil {
				t.Fatalf("ParseSequence(%q): %v", spec, err)
			}
			formatted := FormatSequence(events)
			again, err := ParseSequence(formatted)
			if err != nil {
				t.Fatalf("ParseSequence(%q): %v", formatted, err)
			}
			if len(again) != len(events) {
				t.Fatalf("round trip changed length: %d != %d", len(again), len(events))
			}
			for i := range events {
				if !again[i].Equals(events[i]) {
					t.Errorf("event %d = %v, want %v", i, again[i], events[i])
				}
			}
		})
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{RuneEvent('a'), "a"},
		{RuneEvent(' '), "<Space>"},
		{RuneEvent('<'), "<lt>"},
		{SpecialEvent(KeyEscape), "<Esc>"},
		{SpecialEvent(KeyEnter), "<CR>"},
		{Event{Key: KeyRune, Rune: 'v', Modifiers: ModCtrl}, "<C-v>"},
		{Event{Key: KeyLeft, Modifiers: ModCtrl | ModShift}, "<C-S-Left>"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
