// Package navigator derives the per-question status grid shown beside an
// exam and relays the learner's jump requests.
//
// Positions use two numberings. The current question is a 0-based index;
// answered questions are 1-based display numbers. Derivation compares them
// by adding one to the index.
package navigator

// Status is the state of one question cell.
type Status string

const (
	StatusCurrent    Status = "current"
	StatusAnswered   Status = "answered"
	StatusUnanswered Status = "unanswered"
)

// Item is one derived grid cell.
type Item struct {
	Index  int // 0-based position
	Number int // 1-based display number
	Status Status
}

// Input is everything the derivation reads.
type Input struct {
	Total    int
	Current  int
	Answered []int
}

// Derive assigns a status to every display number from 1 to total. The
// current question wins over answered. A non-positive total yields no items;
// a current index outside [0, total) marks nothing current.
func Derive(total, current int, answered []int) []Item {
	if total <= 0 {
		return nil
	}

	done := make(map[int]struct{}, len(answered))
	for _, n := range answered {
		done[n] = struct{}{}
	}

	items := make([]Item, 0, total)
	for n := 1; n <= total; n++ {
		status := StatusUnanswered
		if _, ok := done[n]; ok {
			status = StatusAnswered
		}
		if current+1 == n {
			status = StatusCurrent
		}
		items = append(items, Item{Index: n - 1, Number: n, Status: status})
	}
	return items
}

// Renderer turns inputs into grid items and selections into navigation
// intents. It holds no question state.
type Renderer struct {
	// OnNavigate receives the 0-based index of a selected question.
	OnNavigate func(index int)
}

// New creates a Renderer that reports selections to onNavigate.
func New(onNavigate func(index int)) Renderer {
	return Renderer{OnNavigate: onNavigate}
}

// Render derives the items for in.
func (r Renderer) Render(in Input) []Item {
	return Derive(in.Total, in.Current, in.Answered)
}

// Select emits one navigation intent for the question with the given display
// number. Numbers outside 1..total are ignored and reported as false.
func (r Renderer) Select(number, total int) bool {
	if number < 1 || number > total {
		return false
	}
	if r.OnNavigate != nil {
		r.OnNavigate(number - 1)
	}
	return true
}

// SelectItem emits the navigation intent for a derived item.
func (r Renderer) SelectItem(it Item) {
	if r.OnNavigate != nil {
		r.OnNavigate(it.Index)
	}
}

// Summary counts items by status.
type Summary struct {
	Total      int
	Current    int
	Answered   int
	Unanswered int

	// Pending lists the display numbers not answered, including the current
	// question when it has no answer.
	Pending []int
}

// Summarize counts derived items. Because current hides answered, pass the
// answered set to tell whether the current question has an answer.
func Summarize(items []Item, answered []int) Summary {
	done := make(map[int]struct{}, len(answered))
	for _, n := range answered {
		done[n] = struct{}{}
	}

	s := Summary{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case StatusCurrent:
			s.Current++
		case StatusAnswered:
			s.Answered++
		case StatusUnanswered:
			s.Unanswered++
		}
		if _, ok := done[it.Number]; !ok {
			s.Pending = append(s.Pending, it.Number)
		}
	}
	return s
}
