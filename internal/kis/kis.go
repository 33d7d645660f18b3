// Package kis implements the KIS ("Debug USB") wire protocol: the
// 16-byte packed request header, portal routing, the enable sequence,
// info retrieval and the chunked upload protocol.
package kis

import (
	"encoding/binary"

	"github.com/libimobiledevice/libirecovery/internal/errs"
	"github.com/libimobiledevice/libirecovery/internal/logging"
)

// Portal identifies which KIS sub-device a request targets.
type Portal uint8

// Recognised portals and their corresponding endpoints.
const (
	PortalConfig Portal = 1
	PortalRSM    Portal = 16
)

// Endpoint returns the OUT endpoint address a request on this portal
// is sent to; the matching IN endpoint is Endpoint() | 0x80.
func (p Portal) Endpoint() (uint8, error) {
	switch p {
	case PortalConfig:
		return 1, nil
	case PortalRSM:
		return 3, nil
	default:
		return 0, errs.ErrInvalidInput
	}
}

// RSM request indices used by the protocol.
const (
	IndexInfo   = 0x100
	IndexUpload = 0x0D
	IndexNotify = 0x103
)

// CONFIG request indices used by the init sequence.
const (
	indexInitA = 0x0A
	indexInitB = 0x14
)

const headerSize = 16
const protocolVersion = 0xA0

// Header is the 16-byte packed KIS request header:
//
//	u16 sequence | u8 version=0xA0 | u8 portal | u8 argCount |
//	u8 indexLo | u8 (indexHi:2 | replySizeLo:6) | u8 replySizeHi |
//	u32 reqSize (little-endian)
type Header struct {
	Sequence    uint16
	Portal      Portal
	ArgCount    uint8
	Index       uint16 // 10 bits
	ReplyWords  uint16 // 14 bits, reply size in 4-byte words
	RequestSize uint32
}

// Validate enforces the header's range constraints: argCount <= 255,
// index < 2^10, replyWords < 2^14, payload + 4*argCount <= 2^32.
func (h Header) Validate(payloadLen int) error {
	if h.Index >= 1<<10 {
		return errs.ErrInvalidInput
	}
	if h.ReplyWords >= 1<<14 {
		return errs.ErrInvalidInput
	}
	total := uint64(payloadLen) + 4*uint64(h.ArgCount)
	if total > 1<<32 {
		return errs.ErrInvalidInput
	}
	return nil
}

// Marshal encodes the header into its 16-byte wire representation.
func (h Header) Marshal() [headerSize]byte {
	var buf [headerSize]byte

	binary.LittleEndian.PutUint16(buf[0:2], h.Sequence)
	buf[2] = protocolVersion
	buf[3] = uint8(h.Portal)
	buf[4] = h.ArgCount

	indexLo := uint8(h.Index & 0xFF)
	indexHi := uint8((h.Index >> 8) & 0x03)
	replyLo := uint8(h.ReplyWords & 0x3F)
	replyHi := uint8((h.ReplyWords >> 6) & 0xFF)

	buf[5] = indexLo
	buf[6] = (indexHi & 0x03) | (replyLo << 2)
	buf[7] = replyHi

	binary.LittleEndian.PutUint32(buf[8:12], h.RequestSize)
	// Bytes 12-15 pad the header out to the fixed 16-byte size; the
	// named fields above only account for 12 bytes.

	return buf
}

// Unmarshal decodes a 16-byte wire header.
func Unmarshal(buf []byte) (Header, error) {
	if len(buf) < headerSize {
		return Header{}, errs.ErrInvalidInput
	}

	var h Header
	h.Sequence = binary.LittleEndian.Uint16(buf[0:2])
	h.Portal = Portal(buf[3])
	h.ArgCount = buf[4]

	indexLo := buf[5]
	indexHi := buf[6] & 0x03
	replyLo := buf[6] >> 2
	replyHi := buf[7]

	h.Index = uint16(indexHi)<<8 | uint16(indexLo)
	h.ReplyWords = uint16(replyHi)<<6 | uint16(replyLo)
	h.RequestSize = binary.LittleEndian.Uint32(buf[8:12])

	return h, nil
}

// BuildRequest assembles a complete wire request: header, then
// little-endian u32 argument words, then payload bytes.
func BuildRequest(h Header, args []uint32, payload []byte) ([]byte, error) {
	if len(args) > 255 {
		return nil, errs.ErrInvalidInput
	}
	h.ArgCount = uint8(len(args))

	if err := h.Validate(len(payload)); err != nil {
		return nil, err
	}

	h.RequestSize = uint32(len(args)*4 + len(payload))

	hdr := h.Marshal()
	out := make([]byte, 0, headerSize+len(args)*4+len(payload))
	out = append(out, hdr[:]...)

	for _, a := range args {
		var w [4]byte
		binary.LittleEndian.PutUint32(w[:], a)
		out = append(out, w[:]...)
	}
	out = append(out, payload...)

	return out, nil
}

// UploadChunkSize is the chunk size used by the chunked upload
// protocol, 0x4000 bytes per request.
const UploadChunkSize = 0x4000

// Transport is the minimal USB surface KP needs: write a request to an
// OUT endpoint and read the corresponding reply from the IN endpoint
// (the same endpoint number OR-ed with 0x80).
type Transport interface {
	Write(endpoint uint8, data []byte) (int, error)
	Read(endpoint uint8, buf []byte) (int, error)
}

// Client drives the KIS protocol over a Transport.
type Client struct {
	t    Transport
	seq  uint16
	Info []byte // raw info-response payload, for identity.ParseKISInfo
	log  *logging.Logger
}

// New creates a KIS client bound to the given transport.
func New(t Transport) *Client {
	return &Client{t: t, log: logging.Default()}
}

func (c *Client) nextSeq() uint16 {
	c.seq++
	return c.seq
}

func (c *Client) roundTrip(portal Portal, index uint16, args []uint32, payload []byte, replyWords uint16) ([]byte, error) {
	ep, err := portal.Endpoint()
	if err != nil {
		return nil, err
	}

	h := Header{Sequence: c.nextSeq(), Portal: portal, Index: index, ReplyWords: replyWords}
	req, err := BuildRequest(h, args, payload)
	if err != nil {
		return nil, err
	}

	c.log.Add(logging.LevelDebug, '>', "kis: portal=%d index=0x%x seq=%d args=%d payload=%d", portal, index, h.Sequence, len(args), len(payload))
	c.log.HexDump(logging.LevelTraceUSB, req)

	if _, err := c.t.Write(ep, req); err != nil {
		c.log.Error('!', "kis: write portal=%d index=0x%x: %s", portal, index, err)
		return nil, err
	}

	if replyWords == 0 {
		return nil, nil
	}

	reply := make([]byte, headerSize+int(replyWords)*4)
	n, err := c.t.Read(ep|0x80, reply)
	if err != nil {
		c.log.Error('!', "kis: read portal=%d index=0x%x: %s", portal, index, err)
		return nil, err
	}
	reply = reply[:n]
	c.log.HexDump(logging.LevelTraceUSB, reply)

	if len(reply) < headerSize {
		c.log.Error('!', "kis: short reply portal=%d index=0x%x: got %d bytes", portal, index, len(reply))
		return nil, errs.ErrUSBStatus
	}

	return reply[headerSize:], nil
}

// Init runs the KIS initialization sequence: write u32 0x21 to
// (CONFIG, 0x0A), then u32 0x01 to (CONFIG, 0x14). Either write may
// fail; the first error is propagated.
func (c *Client) Init() error {
	c.log.Add(logging.LevelInfo, ' ', "kis: init")
	if _, err := c.roundTrip(PortalConfig, indexInitA, []uint32{0x21}, nil, 0); err != nil {
		return err
	}
	if _, err := c.roundTrip(PortalConfig, indexInitB, []uint32{0x01}, nil, 0); err != nil {
		return err
	}
	return nil
}

// infoReplyWords is the reply size, in 4-byte words, of the KIS info
// struct. 64 words (256 bytes) holds the embedded device-descriptor
// strings and the nonce region this library reads.
const infoReplyWords = 64

// LoadInfo issues the zero-argument, zero-payload info request on
// (RSM, 0x100) and returns the raw reply payload for the identity
// parser to decode.
func (c *Client) LoadInfo() ([]byte, error) {
	reply, err := c.roundTrip(PortalRSM, IndexInfo, nil, nil, infoReplyWords)
	if err != nil {
		return nil, err
	}
	c.Info = reply
	return reply, nil
}

// UploadChunk sends one chunk of a chunked upload: an (RSM, 0x0D)
// request with args (address, size) followed by the chunk bytes.
func (c *Client) UploadChunk(address uint32, chunk []byte) error {
	_, err := c.roundTrip(PortalRSM, IndexUpload,
		[]uint32{address, uint32(len(chunk))}, chunk, 0)
	return err
}

// Upload iterates buf in UploadChunkSize chunks starting at address,
// calling progress(bytesSent) after each chunk, then notifies boot of
// the completed image by writing the total length to (RSM, 0x103).
func (c *Client) Upload(address uint32, buf []byte, progress func(sent int)) error {
	c.log.Add(logging.LevelInfo, ' ', "kis: upload address=0x%x len=%d", address, len(buf))
	sent := 0
	for len(buf) > 0 {
		n := UploadChunkSize
		if n > len(buf) {
			n = len(buf)
		}

		if err := c.UploadChunk(address+uint32(sent), buf[:n]); err != nil {
			return err
		}

		sent += n
		buf = buf[n:]

		if progress != nil {
			progress(sent)
		}
	}

	return c.Notify(uint32(sent))
}

// Notify writes the completed image length to (RSM, 0x103), telling
// the device to proceed with the uploaded image.
func (c *Client) Notify(length uint32) error {
	_, err := c.roundTrip(PortalRSM, IndexNotify, []uint32{length}, nil, 0)
	return err
}
