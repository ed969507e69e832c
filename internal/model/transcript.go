package model

import "fmt"

// Segment is a time-aligned piece of the transcript. Times are in seconds.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is what the recognizer produces for one recording.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Validate checks that every segment has end >= start and that segments
// are ordered by time.
func (t Transcript) Validate() error {
	for i, seg := range t.Segments {
		if seg.End < seg.Start {
			return fmt.Errorf("segment %d: end %.3f before start %.3f", i, seg.End, seg.Start)
		}
		if i > 0 {
			prev := t.Segments[i-1]
			if seg.Start < prev.Start || seg.End < prev.End {
				return fmt.Errorf("segment %d: out of order", i)
			}
		}
	}
	return nil
}
