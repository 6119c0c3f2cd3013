package messages

import (
	"encoding/json"
	"fmt"

	messagefb "github.com/cbodonnell/woodblock/flatbuffers/message"
	snapshotfb "github.com/cbodonnell/woodblock/flatbuffers/snapshot"
	"github.com/cbodonnell/woodblock/pkg/game/shapes"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(1<<20))
)

func SerializeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}

	return encoder.EncodeAll(b, make([]byte, 0, len(b))), nil
}

func DeserializeMessage(data []byte) (*Message, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	builder := flatbuffers.NewBuilder(len(m.Payload) + 64)

	sessionID := builder.CreateString(m.SessionID)
	payload := builder.CreateByteVector(m.Payload)

	messagefb.MessageStart(builder)
	messagefb.MessageAddSessionId(builder, sessionID)
	messagefb.MessageAddType(builder, byte(m.Type))
	messagefb.MessageAddPayload(builder, payload)
	messageOffset := messagefb.MessageEnd(builder)
	builder.Finish(messageOffset)
	b := builder.FinishedBytes()

	return b, nil
}

// DeserializeMessageFlatbuffer reads a Message. Malformed buffers are
// reported as errors rather than panics.
func DeserializeMessageFlatbuffer(b []byte) (message *Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			message, err = nil, fmt.Errorf("malformed message: %v", r)
		}
	}()
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("message too short: %d bytes", len(b))
	}

	messageFlatbuffer := messagefb.GetRootAsMessage(b, 0)
	message = &Message{
		SessionID: string(messageFlatbuffer.SessionId()),
		Type:      MessageType(messageFlatbuffer.Type()),
	}
	if payload := messageFlatbuffer.PayloadBytes(); payload != nil {
		message.Payload = append([]byte(nil), payload...)
	}

	return message, nil
}

func SerializeSnapshotUpdate(update *SnapshotUpdate) ([]byte, error) {
	builder := flatbuffers.NewBuilder(1024)
	snapshot := SerializeSnapshotUpdateFlatbuffer(builder, update)
	builder.Finish(snapshot)
	return builder.FinishedBytes(), nil
}

func SerializeSnapshotUpdateFlatbuffer(builder *flatbuffers.Builder, update *SnapshotUpdate) flatbuffers.UOffsetT {
	snap := update.Snapshot

	pieces := make([]flatbuffers.UOffsetT, 0, len(snap.ActivePieces))
	for _, p := range snap.ActivePieces {
		pieces = append(pieces, serializePieceFlatbuffer(builder, p))
	}
	snapshotfb.SnapshotStartPiecesVector(builder, len(pieces))
	for i := len(pieces) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(pieces[i])
	}
	piecesVector := builder.EndVector(len(pieces))

	grid := make([]byte, 0, snap.GridSize*snap.GridSize)
	for _, row := range snap.Grid {
		for _, cell := range row {
			grid = append(grid, byte(cell))
		}
	}
	gridVector := builder.CreateByteVector(grid)
	clearedRows := serializeInt32Vector(builder, update.ClearedRows)
	clearedColumns := serializeInt32Vector(builder, update.ClearedColumns)

	snapshotfb.SnapshotStart(builder)
	snapshotfb.SnapshotAddGridSize(builder, int32(snap.GridSize))
	snapshotfb.SnapshotAddGrid(builder, gridVector)
	snapshotfb.SnapshotAddScore(builder, int32(snap.Score))
	snapshotfb.SnapshotAddState(builder, byte(snap.State))
	snapshotfb.SnapshotAddPieces(builder, piecesVector)
	snapshotfb.SnapshotAddMoves(builder, int32(snap.Moves))
	snapshotfb.SnapshotAddLinesCleared(builder, int32(snap.LinesCleared))
	snapshotfb.SnapshotAddClearedRows(builder, clearedRows)
	snapshotfb.SnapshotAddClearedColumns(builder, clearedColumns)
	snapshotfb.SnapshotAddRefilled(builder, update.Refilled)
	return snapshotfb.SnapshotEnd(builder)
}

func serializeInt32Vector(builder *flatbuffers.Builder, values []int) flatbuffers.UOffsetT {
	builder.StartVector(4, len(values), 4)
	for i := len(values) - 1; i >= 0; i-- {
		builder.PrependInt32(int32(values[i]))
	}
	return builder.EndVector(len(values))
}

func serializePieceFlatbuffer(builder *flatbuffers.Builder, p types.PieceView) flatbuffers.UOffsetT {
	rows, cols := p.Shape.Rows(), p.Shape.Cols()
	mask := make([]byte, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if p.Shape.Filled(r, c) {
				mask = append(mask, 1)
			} else {
				mask = append(mask, 0)
			}
		}
	}
	maskVector := builder.CreateByteVector(mask)

	snapshotfb.PieceStart(builder)
	snapshotfb.PieceAddId(builder, p.ID)
	snapshotfb.PieceAddConsumed(builder, p.Consumed)
	snapshotfb.PieceAddRows(builder, int32(rows))
	snapshotfb.PieceAddCols(builder, int32(cols))
	snapshotfb.PieceAddMask(builder, maskVector)
	return snapshotfb.PieceEnd(builder)
}

// DeserializeSnapshotUpdate reads a SnapshotUpdate. Malformed buffers are
// reported as errors rather than panics.
func DeserializeSnapshotUpdate(b []byte) (update *SnapshotUpdate, err error) {
	defer func() {
		if r := recover(); r != nil {
			update, err = nil, fmt.Errorf("malformed snapshot: %v", r)
		}
	}()
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("snapshot too short: %d bytes", len(b))
	}

	fb := snapshotfb.GetRootAsSnapshot(b, 0)
	size := int(fb.GridSize())
	if fb.GridLength() != size*size {
		return nil, fmt.Errorf("grid has %d cells, want %d", fb.GridLength(), size*size)
	}
	grid := make([][]types.CellState, size)
	for y := 0; y < size; y++ {
		grid[y] = make([]types.CellState, size)
		for x := 0; x < size; x++ {
			grid[y][x] = types.CellState(fb.Grid(y*size + x))
		}
	}

	pieces := make([]types.PieceView, 0, fb.PiecesLength())
	for i := 0; i < fb.PiecesLength(); i++ {
		pfb := &snapshotfb.Piece{}
		if !fb.Pieces(pfb, i) {
			return nil, fmt.Errorf("failed to get piece at index %d", i)
		}
		shape, err := pieceFlatbufferToShape(pfb)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %v", pfb.Id(), err)
		}
		pieces = append(pieces, types.PieceView{
			ID:       pfb.Id(),
			Shape:    shape,
			Consumed: pfb.Consumed(),
		})
	}

	update = &SnapshotUpdate{
		Snapshot: types.Snapshot{
			GridSize:     size,
			Grid:         grid,
			Score:        int(fb.Score()),
			State:        types.SessionState(fb.State()),
			ActivePieces: pieces,
			Moves:        int(fb.Moves()),
			LinesCleared: int(fb.LinesCleared()),
		},
		Refilled: fb.Refilled(),
	}
	for i := 0; i < fb.ClearedRowsLength(); i++ {
		update.ClearedRows = append(update.ClearedRows, int(fb.ClearedRows(i)))
	}
	for i := 0; i < fb.ClearedColumnsLength(); i++ {
		update.ClearedColumns = append(update.ClearedColumns, int(fb.ClearedColumns(i)))
	}

	return update, nil
}

func pieceFlatbufferToShape(fb *snapshotfb.Piece) (shapes.Shape, error) {
	rows, cols := int(fb.Rows()), int(fb.Cols())
	if rows < 1 || cols < 1 || fb.MaskLength() != rows*cols {
		return shapes.Shape{}, fmt.Errorf("invalid mask %dx%d with %d cells", rows, cols, fb.MaskLength())
	}
	mask := make([][]bool, rows)
	for r := 0; r < rows; r++ {
		mask[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			mask[r][c] = fb.Mask(r*cols+c) != 0
		}
	}
	return shapes.NewShape(mask)
}

func NewSnapshotMessage(sessionID string, update *SnapshotUpdate) (*Message, error) {
	payload, err := SerializeSnapshotUpdate(update)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %v", err)
	}
	return &Message{
		SessionID: sessionID,
		Type:      MessageTypeServerSnapshot,
		Payload:   payload,
	}, nil
}

// NewErrorMessage builds an error message whose payload records the kind of err.
func NewErrorMessage(sessionID string, err error) *Message {
	payload, marshalErr := json.Marshal(ErrorPayload{Kind: ErrorKind(err), Message: err.Error()})
	if marshalErr != nil {
		payload = []byte(err.Error())
	}
	return &Message{
		SessionID: sessionID,
		Type:      MessageTypeServerError,
		Payload:   payload,
	}
}
