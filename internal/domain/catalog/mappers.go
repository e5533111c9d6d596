package catalog

import (
	"github.com/fairway/fairway-api/internal/pkg/dateutil"
	"github.com/fairway/fairway-api/internal/pkg/erp"
)

// MapCourse converts an ERP search row into a Course. Numeric identifiers
// and fees arrive as strings or comma-grouped strings and are parsed
// leniently.
func MapCourse(dto erp.CourseDTO) Course {
	slots := make([]Slot, len(dto.TimeList))
	for i, t := range dto.TimeList {
		slots[i] = MapSlot(t)
	}

	return Course{
		ID:         dateutil.ToNumber(dto.GolfPlcNo),
		Name:       dto.GolfPlcNm,
		Region:     dto.RegnNm,
		Date:       dto.BookDt,
		Address:    dto.AddrTrans,
		MinSaleFee: dateutil.ToNumber(dto.MinSaleFee.String()),
		SlotCount:  dto.TimeCount,
		Slots:      slots,
	}
}

// MapSlot converts either tee-time row shape into a Slot. The times
// endpoint shape carries *_TRAN fee strings; the search shape carries
// plain numerics.
func MapSlot(dto erp.TeeTimeDTO) Slot {
	slot := Slot{
		Date:              dto.BookDt,
		Time:              dto.BookTm,
		SectionID:         dto.BookCoursNo,
		Section:           dto.BookCoursNm,
		Seq:               dto.TimeSeq,
		WeekdayWeekendDiv: dto.WkdayWkendDv,
		Prepay:            dto.PrepayYn == "Y",
	}

	if dto.FromTimesEndpoint() {
		slot.CourseID = dateutil.ToNumber(dto.GolfPlcNo)
		slot.SaleFee = dateutil.ToNumber(dto.SaleFeeTran)
		slot.NormalFee = dateutil.ToNumber(dto.NormalFeeTran)
	} else {
		slot.SaleFee = dateutil.ToNumber(dto.SaleFee.String())
		slot.NormalFee = dateutil.ToNumber(dto.NormalFee.String())
	}

	return slot
}
