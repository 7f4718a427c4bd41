package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	got := Vec3{1, 2, 3}.Add(Vec3{4, 5, 6})
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Scale(t *testing.T) {
	got := Vec3{-1, 0.5, 2}.Scale(2)
	want := Vec3{-2, 1, 4}
	if got != want {
		t.Errorf("Vec3.Scale() = %v, want %v", got, want)
	}
}
