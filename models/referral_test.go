package models

import (
	"reflect"
	"strings"
	"testing"
)

// The signup-row natural key must be enforced by the database, not only by
// the read-before-write check in the service: under concurrent registration
// retries two transactions can both miss the existing row and insert, so the
// partial unique index over order-less rows is what collapses them into one.
func TestReferralSignupRowsCarryPartialUniqueIndex(t *testing.T) {
	typ := reflect.TypeOf(ReferralTracking{})

	for _, name := range []string{"ReferrerID", "ReferredUserID"} {
		field, ok := typ.FieldByName(name)
		if !ok {
			t.Fatalf("field %s missing from ReferralTracking", name)
		}
		if !strings.Contains(field.Tag.Get("gorm"), "uniqueIndex:uniq_referral_signup_pair") {
			t.Fatalf("%s is not part of the signup unique index", name)
		}
	}

	referrer, _ := typ.FieldByName("ReferrerID")
	if !strings.Contains(referrer.Tag.Get("gorm"), "where:order_id IS NULL") {
		t.Fatal("signup unique index must be partial over order_id IS NULL")
	}
}

// Order rows stay unique per order independently of the signup index.
func TestReferralOrderRowsStayUniquePerOrder(t *testing.T) {
	field, ok := reflect.TypeOf(ReferralTracking{}).FieldByName("OrderID")
	if !ok {
		t.Fatal("field OrderID missing from ReferralTracking")
	}
	if !strings.Contains(field.Tag.Get("gorm"), "uniqueIndex") {
		t.Fatal("OrderID must carry a unique index")
	}
}
