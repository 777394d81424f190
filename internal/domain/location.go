package domain

type LocationForm struct {
	TenViTri  string `json:"tenViTri"`
	TinhThanh string `json:"tinhThanh"`
	QuocGia   string `json:"quocGia"`
	HinhAnh   string `json:"hinhAnh"`
}

type Location struct {
	ID int `json:"id"`
	LocationForm
}
