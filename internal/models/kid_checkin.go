package models

import "fmt"

// KidCheckin records that a kid was present during a checkin
type KidCheckin struct {
	ID        int64 `db:"kid_checkin_id" json:"kid_checkin_id"`
	CheckinID int64 `db:"checkin_id" json:"checkin_id"`
	KidID     int64 `db:"kid_id" json:"kid_id"`
}

func (kc KidCheckin) String() string {
	return fmt.Sprintf("<KidCheckin kid_checkin_id=%d checkin_id=%d kid_id=%d>", kc.ID, kc.CheckinID, kc.KidID)
}
