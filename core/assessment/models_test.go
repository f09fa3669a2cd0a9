package assessment

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestScoreList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    ScoreList
		wantErr bool
	}{
		{name: "list", data: `["80%", "90%"]`, want: ScoreList{"80%", "90%"}},
		{name: "empty list", data: `[]`, want: ScoreList{}},
		{name: "legacy single string", data: `"80%"`, want: ScoreList{"80%"}},
		{name: "garbage", data: `42`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sl ScoreList
			err := json.Unmarshal([]byte(tt.data), &sl)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(sl, tt.want) {
				t.Errorf("Unmarshal() = %v, want %v", sl, tt.want)
			}
		})
	}
}

func Test_parseScore(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   float64
		wantOK bool
	}{
		{name: "percent", in: "85%", want: 85, wantOK: true},
		{name: "bare number", in: "85", want: 85, wantOK: true},
		{name: "spaces", in: " 85 % ", want: 85, wantOK: true},
		{name: "trailing space", in: "85% ", want: 85, wantOK: true},
		{name: "garbage", in: "lol", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseScore(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseScore(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
