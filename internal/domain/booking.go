package domain

type BookingForm struct {
	MaPhong      int    `json:"maPhong"`
	NgayDen      string `json:"ngayDen"`
	NgayDi       string `json:"ngayDi"`
	SoLuongKhach int    `json:"soLuongKhach"`
	MaNguoiDung  int    `json:"maNguoiDung"`
}

type Booking struct {
	ID int `json:"id"`
	BookingForm
}
