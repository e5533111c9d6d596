package catalog

import (
	"reflect"
	"testing"
)

func course(id int64, name, address string, fee int64, times ...string) Course {
	slots := make([]Slot, len(times))
	for i, tm := range times {
		slots[i] = Slot{Time: tm, SaleFee: fee}
	}
	return Course{
		ID:         id,
		Name:       name,
		Address:    address,
		MinSaleFee: fee,
		SlotCount:  len(slots),
		Slots:      slots,
	}
}

func ids(courses []Course) []int64 {
	out := make([]int64, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func TestRecomputeDefaultSortsByFee(t *testing.T) {
	input := []Course{
		course(1, "한울", "강원도 춘천시", 90000, "0800"),
		course(2, "솔밭", "경기도 용인시", 45000, "0700"),
		course(3, "바다", "제주시 애월읍", 160000, "0630"),
	}

	got := Recompute(input, Filters{}, SortDefault)

	want := []int64{2, 1, 3}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
}

func TestRecomputeDoesNotMutateInput(t *testing.T) {
	input := []Course{
		course(1, "한울", "강원도 춘천시", 90000, "0800"),
		course(2, "솔밭", "경기도 용인시", 45000, "0700"),
	}
	snapshot := make([]Course, len(input))
	copy(snapshot, input)

	_ = Recompute(input, Filters{Regions: []string{"강원"}}, SortTeeTime)

	if !reflect.DeepEqual(input, snapshot) {
		t.Fatal("input slice was mutated")
	}
}

func TestRecomputeIsDeterministic(t *testing.T) {
	input := []Course{
		course(1, "한울", "강원도 춘천시", 90000, "0800"),
		course(2, "솔밭", "경기도 용인시", 45000, "0700"),
		course(3, "바다", "제주시 애월읍", 160000, "0630"),
	}
	filters := Filters{GreenFees: []string{GreenFee50kTo100k, GreenFeeOver150k}}

	first := Recompute(input, filters, SortName)
	second := Recompute(input, filters, SortName)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different outputs")
	}
}

func TestRegionFilterExpandsCompositeLabel(t *testing.T) {
	input := []Course{
		course(1, "서울힐", "서울특별시 노원구", 80000, "0800"),
		course(2, "경기힐", "경기도 용인시", 70000, "0800"),
		course(3, "제주힐", "제주시 애월읍", 60000, "0800"),
	}

	got := Recompute(input, Filters{Regions: []string{"서울 / 경기"}}, SortDefault)

	want := []int64{2, 1}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestTeeTimeBandBoundaries(t *testing.T) {
	tests := []struct {
		name string
		time string
		band string
		keep bool
	}{
		{"before seven is dawn", "0659", TeeTimeDawn, true},
		{"seven leaves dawn", "0700", TeeTimeDawn, false},
		{"seven is morning", "0700", TeeTimeMorning, true},
		{"noon leaves morning", "1200", TeeTimeMorning, false},
		{"noon is afternoon", "1200", TeeTimeAfternoon, true},
		{"sixteen is evening", "1600", TeeTimeEvening, true},
		{"colon form parses", "07:30", TeeTimeMorning, true},
		{"garbage matches nothing", "xx30", TeeTimeMorning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []Course{course(1, "코스", "주소", 50000, tt.time)}
			got := Recompute(input, Filters{TeeTimes: []string{tt.band}}, SortDefault)
			if kept := len(got) == 1; kept != tt.keep {
				t.Fatalf("time %q in band %q: kept=%v, want %v", tt.time, tt.band, kept, tt.keep)
			}
		})
	}
}

func TestGreenFeeBandsAreHalfOpen(t *testing.T) {
	input := []Course{
		course(1, "하나", "주소", 49999, "0800"),
		course(2, "둘", "주소", 50000, "0800"),
		course(3, "셋", "주소", 150000, "0800"),
	}

	under := Recompute(input, Filters{GreenFees: []string{GreenFeeUnder50k}}, SortDefault)
	if !reflect.DeepEqual(ids(under), []int64{1}) {
		t.Fatalf("under-50k band kept %v", ids(under))
	}

	mid := Recompute(input, Filters{GreenFees: []string{GreenFee50kTo100k}}, SortDefault)
	if !reflect.DeepEqual(ids(mid), []int64{2}) {
		t.Fatalf("50k-100k band kept %v", ids(mid))
	}

	top := Recompute(input, Filters{GreenFees: []string{GreenFeeOver150k}}, SortDefault)
	if !reflect.DeepEqual(ids(top), []int64{3}) {
		t.Fatalf("over-150k band kept %v", ids(top))
	}
}

func TestFilterWithNoMatchesYieldsEmpty(t *testing.T) {
	input := []Course{
		course(1, "하나", "주소", 80000, "0800"),
		course(2, "둘", "주소", 90000, "0900"),
	}

	got := Recompute(input, Filters{TeeTimes: []string{TeeTimeEvening}}, SortDefault)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d courses", len(got))
	}
}

func TestSortByTeeTimePutsEmptyCoursesLast(t *testing.T) {
	input := []Course{
		course(1, "빈곳", "주소", 50000),
		course(2, "늦은곳", "주소", 60000, "1500"),
		course(3, "이른곳", "주소", 70000, "0630"),
	}

	got := Recompute(input, Filters{}, SortTeeTime)

	want := []int64{3, 2, 1}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
}

func TestSortByNameUsesKoreanCollation(t *testing.T) {
	input := []Course{
		course(1, "나무골프장", "주소", 50000, "0800"),
		course(2, "가람골프장", "주소", 60000, "0800"),
		course(3, "다도골프장", "주소", 70000, "0800"),
	}

	got := Recompute(input, Filters{}, SortName)

	want := []int64{2, 1, 3}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}
}

func TestPlayerAndPaymentSelectionsDoNotFilter(t *testing.T) {
	input := []Course{
		course(1, "하나", "주소", 80000, "0800"),
		course(2, "둘", "주소", 90000, "0900"),
	}

	got := Recompute(input, Filters{Players: []int{4}, PaymentMethods: []string{"선결제"}}, SortDefault)
	if len(got) != len(input) {
		t.Fatalf("expected %d courses, got %d", len(input), len(got))
	}
}
