package utils

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
)

const (
	Md5 = iota
	SHA1
	SHA256
	SHA512
)

func HashSign(hashType int, text string, base64Encode bool) (string, error) {
	var hash hash.Hash
	switch hashType {
	case Md5:
		hash = md5.New()
	case SHA1:
		hash = sha1.New()
	case SHA256:
		hash = sha256.New()
	case SHA512:
		hash = sha512.New()
	default:
		return "", fmt.Errorf("not support type: %v", hashType)
	}
	_, err := hash.Write([]byte(text))
	if err != nil {
		return "", err
	}
	if base64Encode {
		return base64.StdEncoding.EncodeToString(hash.Sum(nil)), nil
	} else {
		return hex.EncodeToString(hash.Sum(nil)), nil
	}
}

func HmacSign(hashType int, params, secret string, base64Encode bool) (string, error) {
	var mac hash.Hash
	switch hashType {
	case Md5:
		mac = hmac.New(md5.New, []byte(secret))
	case SHA1:
		mac = hmac.New(sha1.New, []byte(secret))
	case SHA256:
		mac = hmac.New(sha256.New, []byte(secret))
	case SHA512:
		mac = hmac.New(sha512.New, []byte(secret))
	default:
		return "", fmt.Errorf("not support type: %v", hashType)
	}

	_, err := mac.Write([]byte(params))
	if err != nil {
		return "", err
	}
	if base64Encode {
		return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
	} else {
		return hex.EncodeToString(mac.Sum(nil)), nil
	}
}
