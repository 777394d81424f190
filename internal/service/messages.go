package service

// Mensajes visibles compartidos por el gateway y la consola.
const (
	MsgGeneric = "Có lỗi xảy ra"

	MsgRoomsFailed     = "Lấy danh sách phòng nghỉ dưỡng thất bại"
	MsgLocationsFailed = "Lấy danh sách vị trí thất bại"
	MsgUsersFailed     = "Lấy danh sách người dùng thất bại"
	MsgBookingsFailed  = "Lấy danh sách đặt phòng thất bại"

	MsgRoomCreate = "Thêm phòng thất bại"
	MsgRoomUpdate = "Cập nhật phòng thất bại"
	MsgRoomDelete = "Xóa phòng nghỉ thất bại"
	MsgBookRoom   = "Đặt phòng thất bại"

	MsgRoomCreated     = "Thêm phòng thành công"
	MsgRoomUpdated     = "Cập nhật phòng thành công"
	MsgLocationCreated = "Thêm Vị trí thành công"
	MsgLocationUpdated = "Chỉnh sửa Vị trí thành công"
	MsgUserCreated     = "Thêm user thành công"
	MsgUserUpdated     = "Chỉnh sửa user thành công"
	MsgBooked          = "Đặt phòng thành công"
	MsgDeleted         = "Xóa thành công"
)
