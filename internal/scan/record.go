// Package scan loads raw BLE scan exports and normalises their
// timestamps. Raw exports are headerless CSV files written per device,
// six fields per row: user id, timestamp, an unused column, the
// advertiser MAC address, the RSSI reading and a transmit power field.
package scan

// Record is one raw scan observation as read from a device export.
// Records are immutable once loaded; the unused third column of the
// export is validated but not retained.
type Record struct {
	UserID    int64
	Timestamp string // raw text; normalised later by ParseTimestamp
	MAC       string
	RSSI      float64
	Power     string
}
