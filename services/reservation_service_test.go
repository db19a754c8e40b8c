package services

import (
	"testing"

	"pms-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reservationFixture struct {
	db       *gorm.DB
	svc      *ReservationService
	folios   *FolioService
	tasks    *HousekeepingService
	prop     models.Property
	guest    models.Guest
	roomType models.RoomType
	room     models.Room
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	db := newTestDB(t)
	prop := seedProperty(t, db)
	guest := seedGuest(t, db, prop.ID)
	rt := seedRoomType(t, db, prop.ID, 100)
	room := seedRoom(t, db, prop.ID, rt.ID, "101")

	folios := NewFolioService(db)
	tasks := NewHousekeepingService(db)
	svc := NewReservationService(db, folios, tasks)

	return &reservationFixture{
		db: db, svc: svc, folios: folios, tasks: tasks,
		prop: prop, guest: guest, roomType: rt, room: room,
	}
}

// book creates a confirmed two-night reservation for one standard room.
func (f *reservationFixture) book(t *testing.T) *models.Reservation {
	t.Helper()
	res, err := f.svc.CreateReservation(
		f.prop.ID, f.guest.ID,
		"2026-09-01", "2026-09-03",
		[]uint{f.roomType.ID}, 2, 0,
	)
	require.NoError(t, err)
	return res
}

func (f *reservationFixture) bookAndAssign(t *testing.T) *models.Reservation {
	t.Helper()
	res := f.book(t)
	require.Len(t, res.Rooms, 1)
	require.NoError(t, f.svc.AssignRooms(f.prop.ID, res.ID, []RoomAssignment{
		{ReservationRoomID: res.Rooms[0].ID, RoomID: f.room.ID},
	}))
	return res
}

func (f *reservationFixture) roomStatus(t *testing.T, roomID uint) string {
	t.Helper()
	var room models.Room
	require.NoError(t, f.db.First(&room, roomID).Error)
	return room.Status
}

func (f *reservationFixture) stayFolio(t *testing.T, reservationID uint) *models.Folio {
	t.Helper()
	var folio models.Folio
	require.NoError(t, f.db.Where("reservation_id = ?", reservationID).First(&folio).Error)
	return &folio
}

func TestCreateReservationOpensFolioWithRoomCharge(t *testing.T) {
	f := newReservationFixture(t)
	res := f.book(t)

	assert.Equal(t, models.ReservationStatusConfirmed, res.Status)
	assert.Equal(t, 2, res.Nights)
	assert.NotEmpty(t, res.ReferenceCode)
	assertDec(t, "200", res.TotalAmount)
	require.Len(t, res.Rooms, 1)
	assert.Nil(t, res.Rooms[0].RoomID)

	// 2 nights x 100 = 200, +10% tax, +5% service charge
	folio := f.stayFolio(t, res.ID)
	assertDec(t, "200", folio.Subtotal)
	assertDec(t, "20", folio.TaxAmount)
	assertDec(t, "10", folio.ServiceCharge)
	assertDec(t, "230", folio.Balance)
	assertFolioInvariants(t, folio)

	var item models.FolioItem
	require.NoError(t, f.db.Where("folio_id = ?", folio.ID).First(&item).Error)
	assert.Equal(t, models.ItemTypeRoom, item.ItemType)
}

func TestCreateReservationValidation(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.svc.CreateReservation(f.prop.ID, f.guest.ID,
		"2026-09-03", "2026-09-01", []uint{f.roomType.ID}, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidDates)

	_, err = f.svc.CreateReservation(f.prop.ID, 9999,
		"2026-09-01", "2026-09-03", []uint{f.roomType.ID}, 2, 0)
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = f.svc.CreateReservation(f.prop.ID, f.guest.ID,
		"2026-09-01", "2026-09-03", []uint{9999}, 2, 0)
	assert.ErrorIs(t, err, ErrRoomSlotMismatch)
}

func TestCheckInRequiresAssignedRooms(t *testing.T) {
	f := newReservationFixture(t)
	res := f.book(t)

	err := f.svc.CheckIn(f.prop.ID, res.ID)
	assert.ErrorIs(t, err, ErrRoomsNotAssigned)

	// the failed attempt must leave no trace
	reloaded, gErr := f.svc.GetDetails(f.prop.ID, res.ID)
	require.NoError(t, gErr)
	assert.Equal(t, models.ReservationStatusConfirmed, reloaded.Status)
	assert.Equal(t, models.RoomStatusVacant, f.roomStatus(t, f.room.ID))
}

func TestCheckInOccupiesRooms(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)

	require.NoError(t, f.svc.CheckIn(f.prop.ID, res.ID))

	reloaded, err := f.svc.GetDetails(f.prop.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedIn, reloaded.Status)
	assert.NotNil(t, reloaded.CheckedInAt)
	assert.Equal(t, models.RoomStatusOccupied, f.roomStatus(t, f.room.ID))

	err = f.svc.CheckIn(f.prop.ID, res.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckOutClosesFolioAndQueuesCleaning(t *testing.T) {
	f := newReservationFixture(t)
	attendant := seedHousekeeper(t, f.db, f.prop.ID, "hk1@example.com")

	res := f.bookAndAssign(t)
	require.NoError(t, f.svc.CheckIn(f.prop.ID, res.ID))
	require.NoError(t, f.svc.CheckOut(f.prop.ID, res.ID))

	reloaded, err := f.svc.GetDetails(f.prop.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedOut, reloaded.Status)
	assert.NotNil(t, reloaded.CheckedOutAt)
	assert.Equal(t, models.RoomStatusDirty, f.roomStatus(t, f.room.ID))

	folio := f.stayFolio(t, res.ID)
	assert.Equal(t, models.FolioStatusClosed, folio.Status)

	var tasks []models.HousekeepingTask
	require.NoError(t, f.db.Where("room_id = ?", f.room.ID).Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusPending, tasks[0].Status)
	require.NotNil(t, tasks[0].AssignedToID)
	assert.Equal(t, attendant.ID, *tasks[0].AssignedToID)
}

func TestCheckOutRequiresCheckedIn(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)

	err := f.svc.CheckOut(f.prop.ID, res.ID)
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestCancelOnlyFromConfirmed(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)

	require.NoError(t, f.svc.Cancel(f.prop.ID, res.ID))
	reloaded, err := f.svc.GetDetails(f.prop.ID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, reloaded.Status)

	err = f.svc.Cancel(f.prop.ID, res.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	err = f.svc.Cancel(f.prop.ID, 9999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDeleteCascadesAndReleasesRooms(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)
	folio := f.stayFolio(t, res.ID)

	require.NoError(t, f.svc.Delete(f.prop.ID, res.ID))

	_, err := f.svc.GetDetails(f.prop.ID, res.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.FolioItem{}).Where("folio_id = ?", folio.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, f.db.Model(&models.Folio{}).Where("id = ?", folio.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, models.RoomStatusVacant, f.roomStatus(t, f.room.ID))
}

func TestDeleteRefusesLiveStay(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)
	require.NoError(t, f.svc.CheckIn(f.prop.ID, res.ID))

	err := f.svc.Delete(f.prop.ID, res.ID)
	assert.ErrorIs(t, err, ErrDeleteNotAllowed)
}

func TestExtendStayRescalesTotalsAndOverwritesFolio(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)

	// pay part of the stay first so the overwritten balance is visible
	folio := f.stayFolio(t, res.ID)
	_, err := f.svc.Folios.RecordPayment(f.prop.ID, folio.ID,
		decimal.NewFromInt(115), models.PaymentMethodCash, "", nil)
	require.NoError(t, err)

	extended, err := f.svc.ExtendStay(f.prop.ID, res.ID, "2026-09-05")
	require.NoError(t, err)

	// 200 over 2 nights rescales to 400 over 4
	assert.Equal(t, 4, extended.Nights)
	assertDec(t, "400", extended.TotalAmount)

	folio = f.stayFolio(t, res.ID)
	assertDec(t, "400", folio.TotalAmount)
	assertDec(t, "285", folio.Balance) // 400 - 115 already paid
}

func TestExtendStayRejectsDateConflict(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)

	// a second confirmed stay holds the same room from the 3rd
	other, err := f.svc.CreateReservation(f.prop.ID, f.guest.ID,
		"2026-09-03", "2026-09-05", []uint{f.roomType.ID}, 1, 0)
	require.NoError(t, err)
	require.NoError(t, f.svc.AssignRooms(f.prop.ID, other.ID, []RoomAssignment{
		{ReservationRoomID: other.Rooms[0].ID, RoomID: f.room.ID},
	}))

	_, err = f.svc.ExtendStay(f.prop.ID, res.ID, "2026-09-04")
	assert.ErrorIs(t, err, ErrDateConflict)
}

func TestExtendStayStateGuards(t *testing.T) {
	f := newReservationFixture(t)
	res := f.bookAndAssign(t)

	_, err := f.svc.ExtendStay(f.prop.ID, res.ID, "2026-08-30")
	assert.ErrorIs(t, err, ErrInvalidDates)

	require.NoError(t, f.svc.Cancel(f.prop.ID, res.ID))
	_, err = f.svc.ExtendStay(f.prop.ID, res.ID, "2026-09-05")
	assert.ErrorIs(t, err, ErrExtendNotAllowed)
}
