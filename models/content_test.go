package models

import "testing"

func TestLocalizedPick(t *testing.T) {
	l := Localized{En: "Hello", Ar: "مرحبا", Tr: "Merhaba"}

	if got := l.Pick("ar"); got != "مرحبا" {
		t.Fatalf("ar = %q", got)
	}
	if got := l.Pick("tr"); got != "Merhaba" {
		t.Fatalf("tr = %q", got)
	}
	if got := l.Pick("en"); got != "Hello" {
		t.Fatalf("en = %q", got)
	}
	if got := l.Pick("fr"); got != "Hello" {
		t.Fatalf("unknown locale should fall back to English, got %q", got)
	}
}

func TestLocalizedPickFallsBackWhenTranslationMissing(t *testing.T) {
	l := Localized{En: "Pricing"}
	if got := l.Pick("ar"); got != "Pricing" {
		t.Fatalf("missing Arabic should fall back to English, got %q", got)
	}
}

func TestUserRoleIsStaff(t *testing.T) {
	if !RoleAdmin.IsStaff() || !RolePartner.IsStaff() {
		t.Fatal("admin and partner are staff")
	}
	if RoleClient.IsStaff() {
		t.Fatal("client is not staff")
	}
}

func TestEffectiveCommissionRate(t *testing.T) {
	u := User{CommissionRate: 0.15}
	if got := u.EffectiveCommissionRate(); got != 0.15 {
		t.Fatalf("rate = %v", got)
	}
	u.CommissionRate = 0
	if got := u.EffectiveCommissionRate(); got != DefaultCommissionRate {
		t.Fatalf("default rate = %v", got)
	}
}
