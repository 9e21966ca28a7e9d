package tz

import (
	"time"
	_ "time/tzdata"
)

// Dhaka is the Asia/Dhaka location (UTC+06:00, no DST).
var Dhaka *time.Location

func init() {
	var err error
	Dhaka, err = time.LoadLocation("Asia/Dhaka")
	if err != nil {
		Dhaka = time.FixedZone("BST", 6*60*60)
	}
}
