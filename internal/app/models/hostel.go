package models

// Hostel defines a hostel building
type Hostel struct {
	HostelID    int64  `json:"hostel_id" db:"hostel_id"`
	HostelName  string `json:"hostel_name" db:"hostel_name"`
	GenderType  string `json:"gender_type" db:"gender_type"`
	WardenName  string `json:"warden_name" db:"warden_name"`
	WardenPhone string `json:"warden_phone" db:"warden_phone"`
	TotalRooms  int    `json:"total_rooms" db:"total_rooms"`
}

// HostelSummary is a hostel with aggregates over its rooms
type HostelSummary struct {
	Hostel
	TotalRoomsCount int64 `json:"total_rooms_count"`
	TotalCapacity   int64 `json:"total_capacity"`
	TotalOccupied   int64 `json:"total_occupied"`
}

// Room defines a room inside a hostel.
// Invariant: 0 <= CurrentOccupancy <= Capacity.
type Room struct {
	RoomID              int64  `json:"room_id" db:"room_id"`
	HostelID            int64  `json:"hostel_id" db:"hostel_id"`
	RoomNumber          string `json:"room_number" db:"room_number"`
	Floor               int    `json:"floor" db:"floor"`
	Capacity            int    `json:"capacity" db:"capacity"`
	CurrentOccupancy    int    `json:"current_occupancy" db:"current_occupancy"`
	RoomType            string `json:"room_type" db:"room_type"`
	HasAttachedBathroom bool   `json:"has_attached_bathroom" db:"has_attached_bathroom"`
}

// IsFull reports whether the room has no free bed
func (r *Room) IsFull() bool {
	return r.CurrentOccupancy >= r.Capacity
}

// RoomView is a room with its hostel name, gender restriction and free beds
type RoomView struct {
	Room
	HostelName    string `json:"hostel_name"`
	GenderType    string `json:"gender_type"`
	AvailableBeds int    `json:"available_beds"`
}
