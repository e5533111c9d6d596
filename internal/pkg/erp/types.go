package erp

import "encoding/json"

// envelope is the outer tagged union every ERP endpoint responds with:
// success=true carries data, success=false carries error+message.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// CourseDTO is a course row from GET /erpBooking/sbs/search.
type CourseDTO struct {
	GolfPlcNo  string       `json:"GOLF_PLC_NO"`
	GolfPlcNm  string       `json:"GOLF_PLC_NM"`
	RegnNm     string       `json:"REGN_NM"`
	BookDt     string       `json:"BOOK_DT"`
	MinSaleFee json.Number  `json:"MIN_SALE_FEE"`
	AddrTrans  string       `json:"ADDR_TRANS"`
	TimeCount  int          `json:"TIME_COUNT"`
	TimeList   []TeeTimeDTO `json:"TIME_LIST"`
}

// TeeTimeDTO is a tee-time row. The ERP sends two shapes for slots: the
// search endpoint embeds rows with numeric SALE_FEE, while the times
// endpoint sends *_TRAN comma-grouped strings plus GOLF_PLC_NO. All fields
// of both shapes live here; absent ones decode to their zero value.
type TeeTimeDTO struct {
	BookTm        string      `json:"BOOK_TM"`
	BookDt        string      `json:"BOOK_DT"`
	SaleFee       json.Number `json:"SALE_FEE"`
	NormalFee     json.Number `json:"NORMAL_FEE"`
	SaleFeeTran   string      `json:"SALE_FEE_TRAN"`
	NormalFeeTran string      `json:"NORMAL_FEE_TRAN"`
	GolfPlcNo     string      `json:"GOLF_PLC_NO"`
	GolfPlcNm     string      `json:"GOLF_PLC_NM"`
	BookCoursNo   string      `json:"BOOK_COURS_NO"`
	BookCoursNm   string      `json:"BOOK_COURS_NM"`
	TimeSeq       string      `json:"TIME_SEQ"`
	WkdayWkendDv  string      `json:"WKDAY_WKEND_DV"`
	HoleScale     string      `json:"HOLE_SCALE"`
	PrepayYn      string      `json:"PREPAY_YN"`
	RecommYn      string      `json:"RECOMM_YN"`
	EventYn       string      `json:"EVENT_YN"`
	EtcMemo       string      `json:"ETC_MEMO"`
}

// FromTimesEndpoint reports whether this row came from the times endpoint
// shape, which is the one carrying *_TRAN fee strings.
func (t TeeTimeDTO) FromTimesEndpoint() bool {
	return t.GolfPlcNo != ""
}

// timesData is the data payload of GET /erpBooking/sbs/times.
type timesData struct {
	TimeList []TeeTimeDTO `json:"timeList"`
	Result   string       `json:"RESULT"`
}

// BookingDTO is a reservation row from GET /erpBooking/sbs/myReservations.
type BookingDTO struct {
	BookNo         int64       `json:"book_no"`
	UserID         int64       `json:"user_id"`
	GolfPlcNo      int64       `json:"golf_plc_no"`
	BookDt         string      `json:"book_dt"`
	BookCoursNo    int64       `json:"book_cours_no"`
	TimeSeq        int64       `json:"time_seq"`
	RsrvPsnn       int         `json:"rsrv_psnn"`
	RsrvrNm        string      `json:"rsrvr_nm"`
	RsrvrMobile    string      `json:"rsrvr_mobile"`
	RsrvDttm       string      `json:"rsrv_dttm"`
	CnclDttm       string      `json:"cncl_dttm"`
	GolfPlcNm      string      `json:"golf_plc_nm"`
	RsrvCnclRuleDt string      `json:"rsrv_cncl_rule_dt"`
	BookCoursNm    string      `json:"book_cours_nm"`
	NormalFee      json.Number `json:"normal_fee"`
	SaleFee        json.Number `json:"sale_fee"`
	BookTm         string      `json:"book_tm"`
	BookStatCd     int         `json:"book_stat_cd"`
	CanceledAt     string      `json:"canceled_at"`
	CreateAt       string      `json:"create_at"`
}

// CreateBookingPayload is the body of POST /erpBooking/sbs/booking.
type CreateBookingPayload struct {
	MbrKey       int64  `json:"mbr_key"`
	GolfPlcNo    int64  `json:"golf_plc_no"`
	BookCoursNo  string `json:"book_cours_no"`
	BookDt       string `json:"book_dt"`
	TimeSeq      string `json:"time_seq"`
	BookTm       string `json:"book_tm"`
	RsrvPsnn     int    `json:"rsrv_psnn"`
	CpRsrvrName  string `json:"cp_rsrvr_name"`
	CpRsrvrPhone string `json:"cp_rsrvr_phone"`
	WkdayWkendDv string `json:"wkday_wkend_dv"`
}

// resultData is the nested result pair several mutating endpoints add on
// top of the success envelope.
type resultData struct {
	Result string `json:"RESULT"`
	Msg    string `json:"MSG"`
	BookNo string `json:"BOOK_NO"`
}
