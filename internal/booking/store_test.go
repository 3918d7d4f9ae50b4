package booking

import (
	"path/filepath"
	"testing"

	"github.com/JoshuaBalles/rgcs/internal/database"
	"github.com/JoshuaBalles/rgcs/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	database.Migrate(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	user := models.User{FirstName: "Test", LastName: "User", Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func validForm() Form {
	return Form{
		FullName:      "Jane Doe",
		MobileNumber:  "09171234567",
		StreetAddress: "12 Main St",
		City:          "Quezon City",
		RoomSize:      "25.5",
		TypeOfService: "deep-clean",
		SelectedDate:  "2024-05-01",
		SelectedTime:  "14:00",
	}
}

func TestSubmit(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "jane@x.com")

	svc, err := Submit(db, owner, validForm())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if svc.Confirmed {
		t.Error("new booking created confirmed")
	}
	if svc.RoomSize != 25.5 {
		t.Errorf("RoomSize = %v, want 25.5", svc.RoomSize)
	}
	if svc.SelectedDate.Format("2006-01-02") != "2024-05-01" {
		t.Errorf("SelectedDate = %v, want 2024-05-01", svc.SelectedDate)
	}
	if svc.SelectedTime != "14:00" {
		t.Errorf("SelectedTime = %q, want %q", svc.SelectedTime, "14:00")
	}
}

func TestSubmitValidation(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "jane@x.com")

	cases := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"missing full name", func(f *Form) { f.FullName = "" }, "full_name"},
		{"missing mobile", func(f *Form) { f.MobileNumber = "  " }, "mobile_number"},
		{"missing city", func(f *Form) { f.City = "" }, "city"},
		{"room size not a number", func(f *Form) { f.RoomSize = "big" }, "room_size"},
		{"room size negative", func(f *Form) { f.RoomSize = "-3" }, "room_size"},
		{"bad date", func(f *Form) { f.SelectedDate = "May 1st" }, "selected_date"},
		{"bad time", func(f *Form) { f.SelectedTime = "2pm" }, "selected_time"},
	}
	for _, tc := range cases {
		f := validForm()
		tc.mutate(&f)
		_, err := Submit(db, owner, f)
		ve, ok := err.(*ValidationError)
		if !ok {
			t.Errorf("%s: error = %v, want *ValidationError", tc.name, err)
			continue
		}
		if ve.Field != tc.field {
			t.Errorf("%s: field = %q, want %q", tc.name, ve.Field, tc.field)
		}
	}

	var count int64
	db.Model(&models.Service{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid submissions persisted %d rows", count)
	}
}

func TestListOwnIsolation(t *testing.T) {
	db := openTestDB(t)
	jane := seedUser(t, db, "jane@x.com")
	john := seedUser(t, db, "john@x.com")

	svc, err := Submit(db, jane, validForm())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	janes, err := ListOwn(db, jane)
	if err != nil {
		t.Fatalf("ListOwn failed: %v", err)
	}
	if len(janes) != 1 || janes[0].ID != svc.ID {
		t.Errorf("ListOwn(jane) = %d rows, want the one booking", len(janes))
	}

	johns, err := ListOwn(db, john)
	if err != nil {
		t.Fatalf("ListOwn failed: %v", err)
	}
	if len(johns) != 0 {
		t.Errorf("ListOwn(john) = %d rows, want 0", len(johns))
	}
}

func seedForSort(t *testing.T, db *gorm.DB, owner uint) {
	t.Helper()
	rows := []struct{ date, clock string }{
		{"2024-05-02", "09:00"},
		{"2024-05-01", "14:00"},
		{"2024-05-02", "18:30"},
		{"2024-04-30", "10:00"},
	}
	for _, r := range rows {
		f := validForm()
		f.SelectedDate = r.date
		f.SelectedTime = r.clock
		if _, err := Submit(db, owner, f); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}
}

func ids(list []models.Service) []uint {
	out := make([]uint, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}

func TestListAllSortByID(t *testing.T) {
	db := openTestDB(t)
	seedForSort(t, db, seedUser(t, db, "jane@x.com"))

	asc, err := ListAll(db, "id", "asc")
	if err != nil {
		t.Fatalf("ListAll asc failed: %v", err)
	}
	desc, err := ListAll(db, "id", "desc")
	if err != nil {
		t.Fatalf("ListAll desc failed: %v", err)
	}

	if len(asc) != 4 || len(desc) != 4 {
		t.Fatalf("len(asc)=%d len(desc)=%d, want 4", len(asc), len(desc))
	}
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", ids(asc), ids(desc))
		}
	}
	for i := 1; i < len(asc); i++ {
		if asc[i-1].ID > asc[i].ID {
			t.Fatalf("asc not ordered by id: %v", ids(asc))
		}
	}
}

func TestListAllSortByDate(t *testing.T) {
	db := openTestDB(t)
	seedForSort(t, db, seedUser(t, db, "jane@x.com"))

	list, err := ListAll(db, "date", "asc")
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	want := []string{
		"2024-04-30 10:00",
		"2024-05-01 14:00",
		"2024-05-02 09:00",
		"2024-05-02 18:30",
	}
	for i, s := range list {
		got := s.SelectedDate.Format("2006-01-02") + " " + s.SelectedTime
		if got != want[i] {
			t.Errorf("row %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestListAllUnknownSortFallsBack(t *testing.T) {
	db := openTestDB(t)
	seedForSort(t, db, seedUser(t, db, "jane@x.com"))

	// Unrecognized key falls back to date desc, time desc.
	list, err := ListAll(db, "bogus", "asc")
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	want := []string{
		"2024-05-02 18:30",
		"2024-05-02 09:00",
		"2024-05-01 14:00",
		"2024-04-30 10:00",
	}
	for i, s := range list {
		got := s.SelectedDate.Format("2006-01-02") + " " + s.SelectedTime
		if got != want[i] {
			t.Errorf("row %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestSetConfirmed(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "jane@x.com")

	svc, err := Submit(db, owner, validForm())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := SetConfirmed(db, svc.ID, true); err != nil {
		t.Fatalf("SetConfirmed failed: %v", err)
	}
	got, err := Get(db, svc.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Confirmed {
		t.Error("booking not confirmed after SetConfirmed(true)")
	}

	if err := SetConfirmed(db, svc.ID, false); err != nil {
		t.Fatalf("SetConfirmed(false) failed: %v", err)
	}
	got, _ = Get(db, svc.ID)
	if got.Confirmed {
		t.Error("booking still confirmed after SetConfirmed(false)")
	}
}

func TestSetConfirmedNotFound(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "jane@x.com")

	svc, err := Submit(db, owner, validForm())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := SetConfirmed(db, 9999, true); err != ErrNotFound {
		t.Errorf("SetConfirmed(9999) error = %v, want ErrNotFound", err)
	}

	// The miss must leave the store untouched.
	got, err := Get(db, svc.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Confirmed {
		t.Error("existing booking mutated by a not-found update")
	}
}
