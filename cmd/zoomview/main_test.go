package main

import (
	"testing"
)

func TestImageArg(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{nil, false},
		{[]string{"photo.jpg"}, false},
		{[]string{"scan.TIFF"}, false},
		{[]string{"notes.txt"}, true},
		{[]string{"noext"}, true},
	}
	for _, tt := range tests {
		err := imageArg(newGUICommand(), tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("imageArg(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
		}
	}
}
