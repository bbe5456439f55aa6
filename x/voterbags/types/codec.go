package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const codecVersion byte = 1

var (
	// NodeValueCodec encodes voter nodes for the VoterNodes collection.
	NodeValueCodec collcodec.ValueCodec[Node] = nodeValueCodec{}

	// BagValueCodec encodes bags for the VoterBags collection.
	BagValueCodec collcodec.ValueCodec[Bag] = bagValueCodec{}
)

// Node layout: version | voter type | bag upper (8 bytes, big endian) | id | prev | next,
// each address prefixed by its length in one byte. A zero length is an absent link.
type nodeValueCodec struct{}

func (nodeValueCodec) Encode(n Node) ([]byte, error) {
	bz := make([]byte, 0, 2+8+3+3*20)
	bz = append(bz, codecVersion, byte(n.VoterType))
	bz = binary.BigEndian.AppendUint64(bz, n.BagUpper)

	var err error
	for _, addr := range []sdk.AccAddress{n.ID, n.Prev, n.Next} {
		if bz, err = appendAddress(bz, addr); err != nil {
			return nil, err
		}
	}
	return bz, nil
}

func (nodeValueCodec) Decode(bz []byte) (Node, error) {
	if len(bz) < 10 || bz[0] != codecVersion {
		return Node{}, fmt.Errorf("invalid node encoding of length %d", len(bz))
	}

	n := Node{
		VoterType: VoterType(bz[1]),
		BagUpper:  binary.BigEndian.Uint64(bz[2:10]),
	}

	rest := bz[10:]
	var err error
	for _, addr := range []*sdk.AccAddress{&n.ID, &n.Prev, &n.Next} {
		if *addr, rest, err = readAddress(rest); err != nil {
			return Node{}, fmt.Errorf("invalid node encoding: %w", err)
		}
	}
	if len(rest) != 0 {
		return Node{}, fmt.Errorf("invalid node encoding: %d trailing bytes", len(rest))
	}
	return n, nil
}

type nodeJSON struct {
	ID        sdk.AccAddress `json:"id"`
	Prev      sdk.AccAddress `json:"prev,omitempty"`
	Next      sdk.AccAddress `json:"next,omitempty"`
	BagUpper  uint64         `json:"bag_upper,string"`
	VoterType VoterType      `json:"voter_type"`
}

func (nodeValueCodec) EncodeJSON(n Node) ([]byte, error) {
	return json.Marshal(nodeJSON(n))
}

func (nodeValueCodec) DecodeJSON(bz []byte) (Node, error) {
	var n nodeJSON
	if err := json.Unmarshal(bz, &n); err != nil {
		return Node{}, err
	}
	return Node(n), nil
}

func (nodeValueCodec) Stringify(n Node) string { return n.String() }

func (nodeValueCodec) ValueType() string { return "voterbags/node" }

// Bag layout: version | bag upper (8 bytes, big endian) | head | tail.
type bagValueCodec struct{}

func (bagValueCodec) Encode(b Bag) ([]byte, error) {
	bz := make([]byte, 0, 1+8+2+2*20)
	bz = append(bz, codecVersion)
	bz = binary.BigEndian.AppendUint64(bz, b.BagUpper)

	var err error
	for _, addr := range []sdk.AccAddress{b.Head, b.Tail} {
		if bz, err = appendAddress(bz, addr); err != nil {
			return nil, err
		}
	}
	return bz, nil
}

func (bagValueCodec) Decode(bz []byte) (Bag, error) {
	if len(bz) < 9 || bz[0] != codecVersion {
		return Bag{}, fmt.Errorf("invalid bag encoding of length %d", len(bz))
	}

	b := Bag{BagUpper: binary.BigEndian.Uint64(bz[1:9])}

	rest := bz[9:]
	var err error
	for _, addr := range []*sdk.AccAddress{&b.Head, &b.Tail} {
		if *addr, rest, err = readAddress(rest); err != nil {
			return Bag{}, fmt.Errorf("invalid bag encoding: %w", err)
		}
	}
	if len(rest) != 0 {
		return Bag{}, fmt.Errorf("invalid bag encoding: %d trailing bytes", len(rest))
	}
	return b, nil
}

type bagJSON struct {
	BagUpper uint64         `json:"bag_upper,string"`
	Head     sdk.AccAddress `json:"head,omitempty"`
	Tail     sdk.AccAddress `json:"tail,omitempty"`
}

func (bagValueCodec) EncodeJSON(b Bag) ([]byte, error) {
	return json.Marshal(bagJSON(b))
}

func (bagValueCodec) DecodeJSON(bz []byte) (Bag, error) {
	var b bagJSON
	if err := json.Unmarshal(bz, &b); err != nil {
		return Bag{}, err
	}
	return Bag(b), nil
}

func (bagValueCodec) Stringify(b Bag) string { return b.String() }

func (bagValueCodec) ValueType() string { return "voterbags/bag" }

func appendAddress(bz []byte, addr sdk.AccAddress) ([]byte, error) {
	if len(addr) > address.MaxAddrLen {
		return nil, fmt.Errorf("address length %d exceeds %d", len(addr), address.MaxAddrLen)
	}
	bz = append(bz, byte(len(addr)))
	return append(bz, addr...), nil
}

func readAddress(bz []byte) (sdk.AccAddress, []byte, error) {
	if len(bz) < 1 {
		return nil, nil, fmt.Errorf("missing address length")
	}
	size := int(bz[0])
	if len(bz) < 1+size {
		return nil, nil, fmt.Errorf("address of length %d truncated to %d bytes", size, len(bz)-1)
	}
	if size == 0 {
		return nil, bz[1:], nil
	}
	addr := make(sdk.AccAddress, size)
	copy(addr, bz[1:1+size])
	return addr, bz[1+size:], nil
}
