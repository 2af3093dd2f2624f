package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombination(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ParsedElement
		wantErr bool
	}{
		{
			name: "all fields",
			raw:  `{"element":"Vapor","en_text":"Steam","emoji":"💨"}`,
			want: ParsedElement{Element: "Vapor", EnText: "Steam", Emoji: "💨"},
		},
		{
			name: "en_text defaults to element",
			raw:  `{"element":"Steam","emoji":"💨"}`,
			want: ParsedElement{Element: "Steam", EnText: "Steam", Emoji: "💨"},
		},
		{
			name: "blank en_text defaults to element",
			raw:  `{"element":"Steam","en_text":"  ","emoji":"💨"}`,
			want: ParsedElement{Element: "Steam", EnText: "Steam", Emoji: "💨"},
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"element\":\"Cloud\",\"emoji\":\"☁️\"}\n```",
			want: ParsedElement{Element: "Cloud", EnText: "Cloud", Emoji: "☁️"},
		},
		{
			name: "bare code fence and surrounding whitespace",
			raw:  "\n  ```\n{\"element\":\" Forest \",\"emoji\":\"🌲\"}\n```  \n",
			want: ParsedElement{Element: "Forest", EnText: "Forest", Emoji: "🌲"},
		},
		{
			name: "emoji with variation selector is one grapheme",
			raw:  `{"element":"Error","emoji":"⚠️"}`,
			want: ParsedElement{Element: "Error", EnText: "Error", Emoji: "⚠️"},
		},
		{
			name: "flag emoji is one grapheme",
			raw:  `{"element":"Japón","en_text":"Japan","emoji":"🇯🇵"}`,
			want: ParsedElement{Element: "Japón", EnText: "Japan", Emoji: "🇯🇵"},
		},
		{
			name: "unknown fields are ignored",
			raw:  `{"element":"Mud","emoji":"🟤","reason":"earth gets wet"}`,
			want: ParsedElement{Element: "Mud", EnText: "Mud", Emoji: "🟤"},
		},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "prose", raw: "Fire and water make steam.", wantErr: true},
		{name: "trailing text", raw: `{"element":"Steam","emoji":"💨"} hope this helps`, wantErr: true},
		{name: "array", raw: `[{"element":"Steam","emoji":"💨"}]`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "missing element", raw: `{"emoji":"💨"}`, wantErr: true},
		{name: "blank element", raw: `{"element":"  ","emoji":"💨"}`, wantErr: true},
		{name: "element is not a string", raw: `{"element":42,"emoji":"💨"}`, wantErr: true},
		{name: "missing emoji", raw: `{"element":"Steam"}`, wantErr: true},
		{name: "empty emoji", raw: `{"element":"Steam","emoji":""}`, wantErr: true},
		{name: "two emoji", raw: `{"element":"Steam","emoji":"💨💧"}`, wantErr: true},
		{name: "emoji is text", raw: `{"element":"Steam","emoji":"steam"}`, wantErr: true},
		{name: "unterminated fence", raw: "```json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCombination(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsedElement_Result(t *testing.T) {
	got := ParsedElement{Element: "Vapor", EnText: "Steam", Emoji: "💨"}.Result()
	assert.Equal(t, Result{Element: "Vapor", EnText: "Steam", Emoji: "💨"}, got)
	assert.Nil(t, got.AudioB64)
}
