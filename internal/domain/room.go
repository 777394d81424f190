package domain

// RoomForm son los datos editables de una habitacion.
type RoomForm struct {
	TenPhong string `json:"tenPhong"`
	Khach    int    `json:"khach"`
	PhongNgu int    `json:"phongNgu"`
	Giuong   int    `json:"giuong"`
	PhongTam int    `json:"phongTam"`
	MoTa     string `json:"moTa"`
	GiaTien  int    `json:"giaTien"`
	MayGiat  bool   `json:"mayGiat"`
	BanLa    bool   `json:"banLa"`
	Tivi     bool   `json:"tivi"`
	DieuHoa  bool   `json:"dieuHoa"`
	Wifi     bool   `json:"wifi"`
	Bep      bool   `json:"bep"`
	DoXe     bool   `json:"doXe"`
	HoBoi    bool   `json:"hoBoi"`
	BanUi    bool   `json:"banUi"`
	MaViTri  int    `json:"maViTri"`
	HinhAnh  string `json:"hinhAnh"`
}

type Room struct {
	ID int `json:"id"`
	RoomForm
}
