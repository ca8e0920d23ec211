package gallery

import (
	"fmt"
	"os"
)

type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// NavState is a derived, read-only snapshot of where the cursor sits in the
// ordered artifact sequence. It is recomputed on every query.
type NavState struct {
	PrevAvailable bool   `json:"prev_available"`
	NextAvailable bool   `json:"next_available"`
	PositionLabel string `json:"position_label"`
	Total         int    `json:"total"`
}

// State answers the prev/next/position query against a possibly stale cursor.
// A nil cursor means "nothing selected": navigation is offered whenever any
// artifact exists. A cursor that no longer appears in the listing (deleted or
// renamed since it was set) is not an error; both directions stay available
// and Adjacent resolves them by timestamp.
func State(entries []Artifact, cursor *Artifact) NavState {
	n := len(entries)
	if n == 0 {
		return NavState{}
	}
	if cursor != nil {
		if i := indexOf(entries, cursor.Path); i >= 0 {
			return NavState{
				PrevAvailable: i > 0,
				NextAvailable: i < n-1,
				PositionLabel: fmt.Sprintf("Image %d of %d", i+1, n),
				Total:         n,
			}
		}
	}
	return NavState{
		PrevAvailable: true,
		NextAvailable: true,
		PositionLabel: fmt.Sprintf("Total images: %d", n),
		Total:         n,
	}
}

// Adjacent resolves the previous or next artifact relative to the cursor.
//
// Unset cursor: "prev" yields the newest artifact, "next" the oldest. Cursor
// found in the listing: plain index step, none at the boundary. Cursor not
// found: the nearest artifact strictly older (prev) or strictly newer (next)
// in the (mtime, path) order; none when that side is empty, even if artifacts
// exist on the other side.
func Adjacent(entries []Artifact, cursor *Artifact, dir Direction) (Artifact, bool) {
	if len(entries) == 0 {
		return Artifact{}, false
	}
	if cursor == nil {
		if dir == Prev {
			return entries[len(entries)-1], true
		}
		return entries[0], true
	}

	if i := indexOf(entries, cursor.Path); i >= 0 {
		switch dir {
		case Prev:
			if i > 0 {
				return entries[i-1], true
			}
		case Next:
			if i < len(entries)-1 {
				return entries[i+1], true
			}
		}
		return Artifact{}, false
	}

	// Stale cursor. Prefer a fresh stat (the file may still exist outside the
	// capture dir); fall back to the mtime remembered when the cursor was set.
	ref := *cursor
	if info, err := os.Stat(cursor.Path); err == nil {
		ref.ModTime = info.ModTime()
	}

	if dir == Prev {
		for i := len(entries) - 1; i >= 0; i-- {
			if before(entries[i], ref) {
				return entries[i], true
			}
		}
		return Artifact{}, false
	}
	for _, a := range entries {
		if before(ref, a) {
			return a, true
		}
	}
	return Artifact{}, false
}

// Manager re-derives the ordered view from the filesystem on every query.
// The only state it holds is the directory path; the cursor is supplied by
// the caller and is never assumed valid.
type Manager struct {
	Dir string
}

// ListOrdered returns the current ordered artifact sequence. An unreadable
// directory yields an empty sequence, not an error: navigation must stay
// usable even when capture is broken.
func (m Manager) ListOrdered() []Artifact {
	entries, err := Scan(m.Dir)
	if err != nil {
		return nil
	}
	return entries
}

func (m Manager) NavigationState(cursor *Artifact) NavState {
	return State(m.ListOrdered(), cursor)
}

func (m Manager) Adjacent(cursor *Artifact, dir Direction) (Artifact, bool) {
	return Adjacent(m.ListOrdered(), cursor, dir)
}
