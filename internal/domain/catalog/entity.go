package catalog

// Slot is a bookable tee time within a course/day. Owned by its parent
// Course and never mutated independently.
type Slot struct {
	CourseID          int64  `json:"course_id,omitempty"`
	Date              string `json:"date,omitempty"`
	Time              string `json:"time"`
	SectionID         string `json:"section_id"`
	Section           string `json:"section"`
	Seq               string `json:"seq"`
	SaleFee           int64  `json:"sale_fee"`
	NormalFee         int64  `json:"normal_fee"`
	WeekdayWeekendDiv string `json:"wkday_wkend_dv"`
	Prepay            bool   `json:"prepay"`
}

// Course is a bookable golf facility for a given date. Raw from the ERP
// fetch; read-only to the engine.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Region     string `json:"region"`
	Date       string `json:"date"`
	Address    string `json:"address"`
	MinSaleFee int64  `json:"min_sale_fee"`
	SlotCount  int    `json:"slot_count"`
	Slots      []Slot `json:"slots"`
}

// Filters holds the five independent selection sets. Replaced wholesale by
// ApplyFilters; membership only, insertion order irrelevant.
type Filters struct {
	Regions        []string `json:"regions"`
	TeeTimes       []string `json:"tee_times"`
	GreenFees      []string `json:"green_fees"`
	Players        []int    `json:"players"`
	PaymentMethods []string `json:"payment_methods"`
}

// Active reports whether any selection set is non-empty.
func (f Filters) Active() bool {
	return len(f.Regions) > 0 || len(f.TeeTimes) > 0 || len(f.GreenFees) > 0 ||
		len(f.Players) > 0 || len(f.PaymentMethods) > 0
}

// SortOption selects the catalog ordering.
type SortOption string

const (
	// SortDefault orders by minimum sale fee ascending.
	SortDefault SortOption = "default"
	// SortTeeTime orders by each course's first tee time.
	SortTeeTime SortOption = "teeTime"
	// SortName orders by course name with Korean collation.
	SortName SortOption = "name"
)

// Valid reports whether o is a known sort option.
func (o SortOption) Valid() bool {
	return o == SortDefault || o == SortTeeTime || o == SortName
}

// Composite region labels join sub-regions with this separator and match
// a course when the address contains ANY sub-token.
const RegionSeparator = " / "

// Filter band labels. These are the exact tags the client sends; bands on
// fees are half-open on the upper bound.
const (
	TeeTimeDawn      = "새벽 ~7시"
	TeeTimeMorning   = "오전 7-12시"
	TeeTimeAfternoon = "오후 12-16시"
	TeeTimeEvening   = "야간 16~"

	GreenFeeUnder50k  = "~5만원"
	GreenFee50kTo100k = "5~10만원"
	GreenFee100kTo150 = "10~15만원"
	GreenFeeOver150k  = "15만원~"
)

// FilterOptions lists the selectable tags per set, as presented by the
// filter sheet.
var FilterOptions = struct {
	Regions        []string `json:"regions"`
	TeeTimes       []string `json:"tee_times"`
	GreenFees      []string `json:"green_fees"`
	Players        []int    `json:"players"`
	PaymentMethods []string `json:"payment_methods"`
}{
	Regions:        []string{"서울 / 경기", "강원", "충청", "경상", "전라", "제주"},
	TeeTimes:       []string{TeeTimeDawn, TeeTimeMorning, TeeTimeAfternoon, TeeTimeEvening},
	GreenFees:      []string{GreenFeeUnder50k, GreenFee50kTo100k, GreenFee100kTo150, GreenFeeOver150k},
	Players:        []int{3, 4},
	PaymentMethods: []string{"현장결제", "선결제", "예약금결제"},
}
