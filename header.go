package sessiondir

import "github.com/Nadia-Adaptive/sessiondir/region"

// HeaderSize is the fixed-length file header: schema id, template id,
// block length, and schema version of the record codec, two bytes each.
const HeaderSize = 8

const (
	headerSchemaIDOffset      = 0
	headerTemplateIDOffset    = 2
	headerBlockLengthOffset   = 4
	headerSchemaVersionOffset = 6
)

// headerIsZero reports whether the file header has never been written.
func headerIsZero(r region.Region) bool {
	for i := 0; i < HeaderSize; i++ {
		if r.GetBytes(i, 1)[0] != 0 {
			return false
		}
	}
	return true
}

func writeHeader(r region.Region, schemaID, templateID, blockLength, schemaVersion uint16) {
	r.PutUint16(headerSchemaIDOffset, schemaID)
	r.PutUint16(headerTemplateIDOffset, templateID)
	r.PutUint16(headerBlockLengthOffset, blockLength)
	r.PutUint16(headerSchemaVersionOffset, schemaVersion)
}

func readHeaderSchemaVersion(r region.Region) uint16 {
	return r.GetUint16(headerSchemaVersionOffset)
}

func readHeaderBlockLength(r region.Region) int {
	return int(r.GetUint16(headerBlockLengthOffset))
}
