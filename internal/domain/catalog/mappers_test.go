package catalog

import (
	"testing"

	"github.com/fairway/fairway-api/internal/pkg/erp"
)

func TestMapCourseParsesLenientNumbers(t *testing.T) {
	dto := erp.CourseDTO{
		GolfPlcNo:  "101",
		GolfPlcNm:  "휘슬링락",
		RegnNm:     "강원",
		BookDt:     "20260901",
		MinSaleFee: "85,000",
		AddrTrans:  "강원도 춘천시",
		TimeCount:  1,
		TimeList: []erp.TeeTimeDTO{
			{BookTm: "0730", SaleFee: "85000", NormalFee: "120000", PrepayYn: "N"},
		},
	}

	course := MapCourse(dto)

	if course.ID != 101 {
		t.Fatalf("expected parsed id, got %d", course.ID)
	}
	if course.MinSaleFee != 85000 {
		t.Fatalf("expected comma-grouped fee parsed, got %d", course.MinSaleFee)
	}
	if len(course.Slots) != 1 || course.Slots[0].SaleFee != 85000 {
		t.Fatalf("unexpected slots: %+v", course.Slots)
	}
}

func TestMapSlotHandlesBothRowShapes(t *testing.T) {
	search := MapSlot(erp.TeeTimeDTO{
		BookTm:    "0730",
		SaleFee:   "85000",
		NormalFee: "120000",
		PrepayYn:  "Y",
	})
	if search.SaleFee != 85000 || search.NormalFee != 120000 {
		t.Fatalf("search shape fees wrong: %+v", search)
	}
	if !search.Prepay {
		t.Fatal("expected prepay flag")
	}

	times := MapSlot(erp.TeeTimeDTO{
		GolfPlcNo:     "101",
		BookTm:        "0730",
		SaleFeeTran:   "85,000",
		NormalFeeTran: "120,000",
	})
	if times.CourseID != 101 {
		t.Fatalf("expected course id from times shape, got %d", times.CourseID)
	}
	if times.SaleFee != 85000 || times.NormalFee != 120000 {
		t.Fatalf("times shape fees wrong: %+v", times)
	}
}
