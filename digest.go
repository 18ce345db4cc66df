// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"crypto/md5" // #nosec G501 - MD5 is required by the PJLink authentication procedure
	"encoding/hex"
)

// DigestLength is the length of the hexadecimal authentication token.
const DigestLength = md5.Size * 2

// SECURITY WARNING: PJLink authentication is MD5(seed + password). MD5 is
// broken as a hash function and the seed is sent in clear text. The digest
// only keeps the password off the wire; it offers no confidentiality.

// Digest computes the PJLink authentication token for a greeting seed and
// password: the lowercase hex MD5 of seed followed by password.
// An empty password is hashed as-is.
func Digest(seed, password string) string {
	buf := make([]byte, 0, len(seed)+len(password))
	buf = append(buf, seed...)
	buf = append(buf, password...)
	defer clearBytes(buf)

	sum := md5.Sum(buf) // #nosec G401
	defer clearBytes(sum[:])

	return hex.EncodeToString(sum[:])
}

// clearBytes overwrites a byte slice holding password material.
func clearBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
