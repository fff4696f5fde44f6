// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package key

import (
	"bufio"
	"bytes"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ava-labs/token-deployer/pkg/constants"

	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
)

var (
	ErrInvalidPrivateKey         = errors.New("invalid private key")
	ErrInvalidPrivateKeyLen      = errors.New("invalid private key length (expect 64 bytes in hex)")
	ErrInvalidPrivateKeyEnding   = errors.New("invalid private key ending")
	ErrInvalidPrivateKeyEncoding = errors.New("invalid private key encoding")
)

var _ Key = &SoftKey{}

type SoftKey struct {
	privKey    *ecdsa.PrivateKey
	privKeyRaw []byte
	address    common.Address
}

const (
	privKeyHexPfx = "0x"
	privKeySize   = 64
)

type SOp struct {
	privKey    *ecdsa.PrivateKey
	privKeyHex string
}

type SOpOption func(*SOp)

func (sop *SOp) applyOpts(opts []SOpOption) {
	for _, opt := range opts {
		opt(sop)
	}
}

// To create a new key SoftKey with a pre-loaded private key.
func WithPrivateKey(privKey *ecdsa.PrivateKey) SOpOption {
	return func(sop *SOp) {
		sop.privKey = privKey
	}
}

// To create a new key SoftKey with a pre-defined hex private key.
func WithPrivateKeyHex(privKey string) SOpOption {
	return func(sop *SOp) {
		sop.privKeyHex = privKey
	}
}

func NewSoft(opts ...SOpOption) (*SoftKey, error) {
	ret := &SOp{}
	ret.applyOpts(opts)

	// set via "WithPrivateKeyHex"
	if len(ret.privKeyHex) > 0 {
		privKey, err := decodePrivateKey(ret.privKeyHex)
		if err != nil {
			return nil, err
		}
		// to not overwrite
		if ret.privKey != nil &&
			!bytes.Equal(crypto.FromECDSA(ret.privKey), crypto.FromECDSA(privKey)) {
			return nil, ErrInvalidPrivateKey
		}
		ret.privKey = privKey
	}

	// generate a new one
	if ret.privKey == nil {
		var err error
		ret.privKey, err = crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
	}

	return &SoftKey{
		privKey:    ret.privKey,
		privKeyRaw: crypto.FromECDSA(ret.privKey),
		address:    crypto.PubkeyToAddress(ret.privKey.PublicKey),
	}, nil
}

// LoadSoft loads the private key from disk and creates the corresponding SoftKey.
func LoadSoft(keyPath string) (*SoftKey, error) {
	kb, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	return LoadSoftFromBytes(kb)
}

// LoadSoftFromBytes loads the private key from bytes and creates the corresponding SoftKey.
func LoadSoftFromBytes(kb []byte) (*SoftKey, error) {
	kb = bytes.TrimPrefix(kb, []byte(privKeyHexPfx))
	r := bufio.NewReader(bytes.NewBuffer(kb))
	buf := make([]byte, privKeySize)
	n, err := readASCII(buf, r)
	if err != nil {
		return nil, err
	}
	if n != len(buf) {
		return nil, ErrInvalidPrivateKeyLen
	}
	if err := checkKeyFileEnd(r); err != nil {
		return nil, err
	}
	return NewSoft(WithPrivateKeyHex(string(buf)))
}

// readASCII reads into 'buf', stopping when the buffer is full or
// when a non-printable control character is encountered.
func readASCII(buf []byte, r io.ByteReader) (n int, err error) {
	for ; n < len(buf); n++ {
		buf[n], err = r.ReadByte()
		switch {
		case errors.Is(err, io.EOF) || buf[n] < '!':
			return n, nil
		case err != nil:
			return n, err
		}
	}
	return n, nil
}

const fileEndLimit = 1

// checkKeyFileEnd skips over additional newlines at the end of a key file.
func checkKeyFileEnd(r io.ByteReader) error {
	for idx := 0; ; idx++ {
		b, err := r.ReadByte()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		case b != '\n' && b != '\r':
			return ErrInvalidPrivateKeyEnding
		case idx > fileEndLimit:
			return ErrInvalidPrivateKeyLen
		}
	}
}

func decodePrivateKey(enc string) (*ecdsa.PrivateKey, error) {
	enc = strings.TrimPrefix(strings.TrimSpace(enc), privKeyHexPfx)
	skBytes, err := hex.DecodeString(enc)
	if err != nil {
		return nil, ErrInvalidPrivateKeyEncoding
	}
	privKey, err := crypto.ToECDSA(skBytes)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	return privKey, nil
}

// C returns the checksummed address controlled by the key.
func (m *SoftKey) C() string {
	return m.address.Hex()
}

func (m *SoftKey) Address() common.Address {
	return m.address
}

// Returns the private key.
func (m *SoftKey) PrivateKey() *ecdsa.PrivateKey {
	return m.privKey
}

// Returns the private key in raw bytes.
func (m *SoftKey) Raw() []byte {
	return m.privKeyRaw
}

// Returns the private key in hex, without prefix.
func (m *SoftKey) PrivKeyHex() string {
	return hex.EncodeToString(m.privKeyRaw)
}

// Saves the private key to disk with hex encoding.
func (m *SoftKey) Save(p string) error {
	return os.WriteFile(p, []byte(m.PrivKeyHex()), constants.WriteReadUserOnlyPerms)
}
