// Package qris membangun payload QRIS dinamis (terikat nominal) dari
// payload statis milik merchant, sesuai format tag-length-value EMVCo.
package qris

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrNotStaticPayload: payload sumber tidak memuat tag 01 bernilai
	// "11" (point of initiation method statis).
	ErrNotStaticPayload = errors.New("qris: source payload is not a static QRIS code (tag 010211 missing)")
	// ErrCountryCodeMissing: tag 58 "5802ID" tidak ditemukan, padahal
	// itu titik sisip tag nominal.
	ErrCountryCodeMissing = errors.New("qris: malformed payload, country code tag 5802ID not found")
	// ErrAmountNotPositive: nominal harus bilangan bulat positif dalam
	// satuan rupiah penuh.
	ErrAmountNotPositive = errors.New("qris: amount must be a positive integer")
)

const (
	initiationStatic  = "010211"
	initiationDynamic = "010212"
	countryCodeTag    = "5802ID"
	crcHeader         = "6304"
)

// ChecksumCRC16 menghitung CRC16-CCITT (polinomial 0x1021, nilai awal
// 0xFFFF, MSB dulu) atas byte string, diformat 4 digit hex kapital.
// QRIS mewajibkan algoritma ini bit-for-bit; hasil yang menyimpang
// membuat kode tidak bisa discan aplikasi pembayaran.
func ChecksumCRC16(s string) string {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return fmt.Sprintf("%04X", crc)
}

// DynamicPayload menyisipkan tag 54 (nominal) ke payload statis dan
// menghitung ulang checksum:
//
//  1. tag 01 "11" (statis) diganti "12" (dinamis)
//  2. header CRC lama ("6304" + 4 hex) di buntut dibuang
//  3. tag 54 = "54" + panjang nominal 2 digit + nominal (tanpa desimal)
//  4. tag 54 disisip tepat sebelum "5802ID"
//  5. "6304" ditempel lagi, CRC16 baru dihitung atas seluruh string
func DynamicPayload(static string, amount int64) (string, error) {
	if amount <= 0 {
		return "", ErrAmountNotPositive
	}
	if !strings.Contains(static, initiationStatic) {
		return "", ErrNotStaticPayload
	}

	payload := strings.Replace(static, initiationStatic, initiationDynamic, 1)
	if len(payload) <= 8 {
		return "", ErrCountryCodeMissing
	}
	payload = payload[:len(payload)-8]

	amountStr := fmt.Sprintf("%d", amount)
	amountTag := fmt.Sprintf("54%02d%s", len(amountStr), amountStr)

	idx := strings.Index(payload, countryCodeTag)
	if idx < 0 {
		return "", ErrCountryCodeMissing
	}

	payload = payload[:idx] + amountTag + payload[idx:] + crcHeader
	return payload + ChecksumCRC16(payload), nil
}

// Image me-render payload final menjadi PNG yang bisa discan.
func Image(payload string, size int) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, size)
}
