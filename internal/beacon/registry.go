// Package beacon holds the fixed registry of deployed BLE beacons.
//
// The study deployment uses 25 beacons. Each is identified by its MAC
// address and owns one slot (1..25); slot N backs the beacon_flag_N
// column of the merged output. The registry is fixed at compile time:
// the beacons are physical devices and the column layout is part of
// the output contract.
package beacon

// Count is the number of deployed beacons.
const Count = 25

// slotByMAC maps each beacon MAC address to its column slot.
var slotByMAC = map[string]int{
	"F7:7F:78:76:7E:F3": 1,
	"C6:CD:5E:3D:2F:BB": 2,
	"D6:F4:3A:79:74:63": 3,
	"C9:17:55:E2:3E:0E": 4,
	"CA:60:AB:EE:EC:7F": 5,
	"D6:51:7F:AB:0E:29": 6,
	"CC:54:33:F6:A7:90": 7,
	"EB:20:56:87:04:5A": 8,
	"EE:E7:46:DC:19:6F": 9,
	"C8:5B:BF:37:07:A0": 10,
	"D7:26:F6:A3:44:D2": 11,
	"DD:83:B0:27:FD:36": 12,
	"E5:CD:4A:36:87:06": 13,
	"DC:22:B8:17:4E:B5": 14,
	"EA:09:20:80:D6:44": 15,
	"E6:99:D1:EC:C6:81": 16,
	"F6:DA:97:C7:D5:28": 17,
	"EA:66:A1:12:2C:F4": 18,
	"C9:EA:57:8B:0F:80": 19,
	"D6:7C:1D:2C:2A:0A": 20,
	"DA:E1:70:5F:44:97": 21,
	"DD:10:10:F6:4F:27": 22,
	"E6:F3:93:A8:9E:22": 23,
	"E6:60:05:1F:88:F9": 24,
	"D4:33:FD:F4:C2:A8": 25,
}

// SlotFor returns the 1-based column slot for a beacon MAC address.
// The second return is false for MACs outside the deployment; that is
// a legitimate absence (phones, laptops and other advertisers show up
// in raw scans), not an error.
func SlotFor(mac string) (int, bool) {
	slot, ok := slotByMAC[mac]
	return slot, ok
}

// MACs returns all registered MAC addresses in slot order.
func MACs() []string {
	out := make([]string, Count)
	for mac, slot := range slotByMAC {
		out[slot-1] = mac
	}
	return out
}
