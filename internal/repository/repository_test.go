package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
)

type capturedRequest struct {
	method string
	path   string
	query  map[string]string
	body   map[string]any
}

// fakeBackend responde siempre con el mismo content y guarda la ultima request.
type fakeBackend struct {
	status  int
	content string
	message string
	last    capturedRequest
}

func (f *fakeBackend) handler(w http.ResponseWriter, r *http.Request) {
	f.last = capturedRequest{method: r.Method, path: r.URL.Path, query: map[string]string{}}
	for k := range r.URL.Query() {
		f.last.query[k] = r.URL.Query().Get(k)
	}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &f.last.body)
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	content := f.content
	if content == "" {
		content = "null"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"statusCode": status,
		"content":    json.RawMessage(content),
		"message":    f.message,
	})
}

func newFakeClient(t *testing.T, f *fakeBackend) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(f.handler))
	t.Cleanup(srv.Close)
	return backend.NewClient(backend.Config{BaseURL: srv.URL + "/api"}, zap.NewNop())
}

func TestRoomRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("pagina con keyword", func(t *testing.T) {
		f := &fakeBackend{content: `{"pageIndex":2,"pageSize":5,"totalRow":12,"data":[{"id":7,"tenPhong":"Villa"}]}`}
		repo := NewAPIRoomRepository(newFakeClient(t, f))

		page, err := repo.Page(ctx, domain.Pagination{PageIndex: 2, PageSize: 5, Keyword: "villa"})
		if err != nil {
			t.Fatalf("page: %v", err)
		}
		if f.last.path != "/api/phong-thue/phan-trang-tim-kiem" {
			t.Fatalf("unexpected path %s", f.last.path)
		}
		if f.last.query["pageIndex"] != "2" || f.last.query["pageSize"] != "5" || f.last.query["keyword"] != "villa" {
			t.Fatalf("unexpected query %v", f.last.query)
		}
		if page.TotalRow != 12 || len(page.Data) != 1 || page.Data[0].TenPhong != "Villa" || page.Data[0].ID != 7 {
			t.Fatalf("unexpected page %+v", page)
		}
	})

	t.Run("sin keyword no se envia", func(t *testing.T) {
		f := &fakeBackend{content: `{"data":[]}`}
		repo := NewAPIRoomRepository(newFakeClient(t, f))
		if _, err := repo.Page(ctx, domain.DefaultPagination()); err != nil {
			t.Fatalf("page: %v", err)
		}
		if _, ok := f.last.query["keyword"]; ok {
			t.Fatalf("keyword should be omitted: %v", f.last.query)
		}
	})

	t.Run("por ubicacion", func(t *testing.T) {
		f := &fakeBackend{content: `[{"id":1,"maViTri":3},{"id":2,"maViTri":3}]`}
		repo := NewAPIRoomRepository(newFakeClient(t, f))
		rooms, err := repo.ListByLocation(ctx, 3)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if f.last.path != "/api/phong-thue/lay-phong-theo-vi-tri" || f.last.query["maViTri"] != "3" {
			t.Fatalf("unexpected request %+v", f.last)
		}
		if len(rooms) != 2 || rooms[1].MaViTri != 3 {
			t.Fatalf("unexpected rooms %+v", rooms)
		}
	})

	t.Run("update envia id en path y body", func(t *testing.T) {
		f := &fakeBackend{content: `{"id":4,"tenPhong":"Nuevo"}`}
		repo := NewAPIRoomRepository(newFakeClient(t, f))
		room, err := repo.Update(ctx, 4, domain.RoomForm{TenPhong: "Nuevo", Wifi: true})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if f.last.method != http.MethodPut || f.last.path != "/api/phong-thue/4" {
			t.Fatalf("unexpected request %+v", f.last)
		}
		if f.last.body["id"] != float64(4) || f.last.body["wifi"] != true {
			t.Fatalf("unexpected body %v", f.last.body)
		}
		if room.TenPhong != "Nuevo" {
			t.Fatalf("unexpected room %+v", room)
		}
	})

	t.Run("delete devuelve mensaje", func(t *testing.T) {
		f := &fakeBackend{message: "Xóa phòng thành công"}
		repo := NewAPIRoomRepository(newFakeClient(t, f))
		msg, err := repo.Delete(ctx, 9)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if f.last.method != http.MethodDelete || f.last.path != "/api/phong-thue/9" || msg != "Xóa phòng thành công" {
			t.Fatalf("unexpected result %q %+v", msg, f.last)
		}
	})

	t.Run("error del backend", func(t *testing.T) {
		f := &fakeBackend{status: http.StatusNotFound, content: `"Không tìm thấy phòng"`}
		repo := NewAPIRoomRepository(newFakeClient(t, f))
		_, err := repo.Get(ctx, 99)
		var apiErr *backend.APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound || apiErr.Message != "Không tìm thấy phòng" {
			t.Fatalf("unexpected error %v", err)
		}
	})
}

func TestLocationRepository(t *testing.T) {
	ctx := context.Background()
	f := &fakeBackend{content: `{"id":5,"tenViTri":"Hội An","tinhThanh":"Quảng Nam","quocGia":"Việt Nam"}`, message: "Thêm Vị trí thành công"}
	repo := NewAPILocationRepository(newFakeClient(t, f))

	loc, err := repo.Create(ctx, domain.LocationForm{TenViTri: "Hội An", TinhThanh: "Quảng Nam", QuocGia: "Việt Nam"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.last.method != http.MethodPost || f.last.path != "/api/vi-tri" || f.last.body["tenViTri"] != "Hội An" {
		t.Fatalf("unexpected request %+v", f.last)
	}
	if loc.ID != 5 {
		t.Fatalf("unexpected location %+v", loc)
	}

	loc.TenViTri = "Hoi An"
	if _, err := repo.Update(ctx, loc); err != nil {
		t.Fatalf("update: %v", err)
	}
	if f.last.method != http.MethodPut || f.last.path != "/api/vi-tri/5" {
		t.Fatalf("unexpected request %+v", f.last)
	}

	if _, err := repo.Page(ctx, domain.Pagination{PageIndex: 1, PageSize: 10}); err != nil {
		t.Fatalf("page: %v", err)
	}
	if f.last.path != "/api/vi-tri/phan-trang-tim-kiem" {
		t.Fatalf("unexpected path %s", f.last.path)
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("delete usa query id", func(t *testing.T) {
		f := &fakeBackend{message: "Xóa user thành công"}
		repo := NewAPIUserRepository(newFakeClient(t, f))
		msg, err := repo.Delete(ctx, 12)
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if f.last.path != "/api/users" || f.last.query["id"] != "12" || msg != "Xóa user thành công" {
			t.Fatalf("unexpected request %+v msg=%q", f.last, msg)
		}
	})

	t.Run("busqueda por nombre", func(t *testing.T) {
		f := &fakeBackend{content: `[{"id":1,"name":"Ana Maria","role":"ADMIN"}]`}
		repo := NewAPIUserRepository(newFakeClient(t, f))
		users, err := repo.Search(ctx, "Ana Maria")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if f.last.path != "/api/users/search/Ana Maria" {
			t.Fatalf("unexpected path %s", f.last.path)
		}
		if len(users) != 1 || users[0].Role != domain.RoleAdmin {
			t.Fatalf("unexpected users %+v", users)
		}
	})

	t.Run("phone nulo", func(t *testing.T) {
		f := &fakeBackend{content: `[{"id":2,"name":"B","phone":null}]`}
		repo := NewAPIUserRepository(newFakeClient(t, f))
		users, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(users) != 1 || users[0].Phone != nil {
			t.Fatalf("unexpected users %+v", users)
		}
	})
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("por usuario", func(t *testing.T) {
		f := &fakeBackend{content: `[{"id":1,"maPhong":3,"maNguoiDung":8,"soLuongKhach":2}]`}
		repo := NewAPIBookingRepository(newFakeClient(t, f))
		bookings, err := repo.ListByUser(ctx, 8)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if f.last.path != "/api/dat-phong/lay-theo-nguoi-dung/8" {
			t.Fatalf("unexpected path %s", f.last.path)
		}
		if len(bookings) != 1 || bookings[0].MaNguoiDung != 8 || bookings[0].SoLuongKhach != 2 {
			t.Fatalf("unexpected bookings %+v", bookings)
		}
	})

	t.Run("crear devuelve mensaje", func(t *testing.T) {
		f := &fakeBackend{content: `{"id":10,"maPhong":3}`, message: "Đặt phòng thành công"}
		repo := NewAPIBookingRepository(newFakeClient(t, f))
		booking, msg, err := repo.Create(ctx, domain.BookingForm{MaPhong: 3, SoLuongKhach: 1})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if booking.ID != 10 || msg != "Đặt phòng thành công" {
			t.Fatalf("unexpected result %+v %q", booking, msg)
		}
	})
}

func TestAuthRepository_SignIn(t *testing.T) {
	f := &fakeBackend{content: `{"user":{"id":3,"email":"a@b.c"},"token":"jwt"}`}
	repo := NewAPIAuthRepository(newFakeClient(t, f))

	res, err := repo.SignIn(context.Background(), Credentials{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if f.last.method != http.MethodPost || f.last.path != "/api/auth/signin" || f.last.body["email"] != "a@b.c" {
		t.Fatalf("unexpected request %+v", f.last)
	}
	if res.Token != "jwt" || string(res.User) != `{"id":3,"email":"a@b.c"}` {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("elige por id y resuelve alias", func(t *testing.T) {
		f := &fakeBackend{content: `[{"id":1,"name":"Otro"},{"id":2,"hoTen":"Lan","soDT":"090","avatarUrl":"a.png","gender":false}]`}
		repo := NewAPIProfileRepository(newFakeClient(t, f))
		p, err := repo.FindByID(ctx, 2)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if p.Name != "Lan" || p.Phone != "090" || p.Avatar != "a.png" || p.Gender == nil || *p.Gender {
			t.Fatalf("unexpected profile %+v", p)
		}
	})

	t.Run("id ausente devuelve perfil vacio", func(t *testing.T) {
		f := &fakeBackend{content: `[{"id":1,"name":"Otro"}]`}
		repo := NewAPIProfileRepository(newFakeClient(t, f))
		p, err := repo.FindByID(ctx, 5)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if p.ID != 5 || p.Name != "" {
			t.Fatalf("unexpected profile %+v", p)
		}
	})

	t.Run("update", func(t *testing.T) {
		f := &fakeBackend{content: `{"name":"Nuevo"}`}
		repo := NewAPIProfileRepository(newFakeClient(t, f))
		p, err := repo.Update(ctx, domain.Profile{ID: 4, Name: "Nuevo"})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if f.last.method != http.MethodPut || f.last.path != "/api/users/4" {
			t.Fatalf("unexpected request %+v", f.last)
		}
		if p.ID != 4 || p.Name != "Nuevo" {
			t.Fatalf("unexpected profile %+v", p)
		}
	})
}
