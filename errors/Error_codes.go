package errors

// ERR is the machine-readable error code carried by every Error.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_CONTEXT_CANCELED ERR = 6
	ERR_ERROR            ERR = 9

	ERR_TX_NOT_FOUND ERR = 30

	ERR_SERVICE_UNAVAILABLE ERR = 50
	ERR_SERVICE_ERROR       ERR = 51

	ERR_STORAGE_UNAVAILABLE ERR = 60
	ERR_STORAGE_ERROR       ERR = 61

	ERR_CLUSTER_NOT_FOUND ERR = 70
	ERR_MALFORMED_PAYLOAD ERR = 71
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	3:  "NOT_FOUND",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	6:  "CONTEXT_CANCELED",
	9:  "ERROR",
	30: "TX_NOT_FOUND",
	50: "SERVICE_UNAVAILABLE",
	51: "SERVICE_ERROR",
	60: "STORAGE_UNAVAILABLE",
	61: "STORAGE_ERROR",
	70: "CLUSTER_NOT_FOUND",
	71: "MALFORMED_PAYLOAD",
}

var ERR_value = map[string]int32{
	"UNKNOWN":             0,
	"INVALID_ARGUMENT":    1,
	"NOT_FOUND":           3,
	"PROCESSING":          4,
	"CONFIGURATION":       5,
	"CONTEXT_CANCELED":    6,
	"ERROR":               9,
	"TX_NOT_FOUND":        30,
	"SERVICE_UNAVAILABLE": 50,
	"SERVICE_ERROR":       51,
	"STORAGE_UNAVAILABLE": 60,
	"STORAGE_ERROR":       61,
	"CLUSTER_NOT_FOUND":   70,
	"MALFORMED_PAYLOAD":   71,
}

func (e ERR) String() string {
	if name, ok := ERR_name[int32(e)]; ok {
		return name
	}

	return "UNKNOWN"
}
