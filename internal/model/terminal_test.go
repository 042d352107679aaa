package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHardwareID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "AA:BB:CC:DD:EE:FF", want: "aa:bb:cc:dd:ee:ff"},
		{in: " aa-bb-cc-dd-ee-ff ", want: "aa:bb:cc:dd:ee:ff"},
		{in: "aabb.ccdd.eeff", want: "aa:bb:cc:dd:ee:ff"},
		{in: "KIOSK-Lobby-1", want: "kiosk-lobby-1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHardwareID(tt.in))
		})
	}
}
