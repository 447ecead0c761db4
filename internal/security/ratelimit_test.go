// Tests for the token-bucket rate limiter and the login lockout tracker.
package security

import (
	"testing"
	"time"
)

// TestRateLimiter_Allow tests basic rate limiting functionality.
func TestRateLimiter_Allow(t *testing.T) {
	// Create limiter: 5 requests allowed, refill 1 per second
	limiter := NewRateLimiter(5, 1*time.Second)
	defer limiter.Stop()

	identifier := "192.168.1.100"

	// First 5 requests should be allowed
	for i := 0; i < 5; i++ {
		if !limiter.Allow(identifier) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be denied (no tokens left)
	if limiter.Allow(identifier) {
		t.Error("6th request should be denied")
	}

	// Wait for token refill
	time.Sleep(1100 * time.Millisecond)

	// Should be allowed after refill
	if !limiter.Allow(identifier) {
		t.Error("Request after refill should be allowed")
	}
}

// TestRateLimiter_MultipleIdentifiers tests rate limiting per identifier.
func TestRateLimiter_MultipleIdentifiers(t *testing.T) {
	limiter := NewRateLimiter(3, 1*time.Second)
	defer limiter.Stop()

	ip1 := "192.168.1.100"
	ip2 := "192.168.1.101"

	// Exhaust IP1's tokens
	for i := 0; i < 3; i++ {
		if !limiter.Allow(ip1) {
			t.Errorf("IP1 request %d should be allowed", i+1)
		}
	}

	// IP1 should now be rate limited
	if limiter.Allow(ip1) {
		t.Error("IP1 4th request should be denied")
	}

	// IP2 should still have tokens (separate bucket)
	for i := 0; i < 3; i++ {
		if !limiter.Allow(ip2) {
			t.Errorf("IP2 request %d should be allowed", i+1)
		}
	}

	// IP2 should now also be rate limited
	if limiter.Allow(ip2) {
		t.Error("IP2 4th request should be denied")
	}
}

// TestRateLimiter_Reset tests resetting rate limit for identifier.
func TestRateLimiter_Reset(t *testing.T) {
	limiter := NewRateLimiter(3, 1*time.Second)
	defer limiter.Stop()

	identifier := "192.168.1.100"

	// Exhaust tokens
	for i := 0; i < 3; i++ {
		limiter.Allow(identifier)
	}

	// Should be rate limited
	if limiter.Allow(identifier) {
		t.Error("Should be rate limited")
	}

	// Reset the identifier
	limiter.Reset(identifier)

	// Should be allowed after reset
	if !limiter.Allow(identifier) {
		t.Error("Should be allowed after reset")
	}
}

// TestRateLimiter_TokenRefill tests gradual token refill.
func TestRateLimiter_TokenRefill(t *testing.T) {
	// 3 tokens, refill 1 per second
	limiter := NewRateLimiter(3, 1*time.Second)
	defer limiter.Stop()

	identifier := "192.168.1.100"

	// Use all 3 tokens
	for i := 0; i < 3; i++ {
		limiter.Allow(identifier)
	}

	// No tokens left
	if limiter.Allow(identifier) {
		t.Error("Should be denied (no tokens)")
	}

	// Wait for 2 tokens to refill
	time.Sleep(2100 * time.Millisecond)

	// Should have 2 tokens now
	if !limiter.Allow(identifier) {
		t.Error("Should have 1 refilled token")
	}
	if !limiter.Allow(identifier) {
		t.Error("Should have 2 refilled tokens")
	}

	// 3rd should be denied (only 2 refilled)
	if limiter.Allow(identifier) {
		t.Error("Should be denied (only 2 tokens refilled)")
	}
}

// TestAccountLockout_RecordFailedAttempt tests failed attempt tracking.
func TestAccountLockout_RecordFailedAttempt(t *testing.T) {
	lockout := NewAccountLockout(5, 10*time.Minute)

	identifier := "user@example.com"

	// First 4 attempts should not trigger lockout
	for i := 0; i < 4; i++ {
		locked := lockout.RecordFailedAttempt(identifier)
		if locked {
			t.Errorf("Attempt %d should not trigger lockout", i+1)
		}
	}

	// 5th attempt should trigger lockout
	locked := lockout.RecordFailedAttempt(identifier)
	if !locked {
		t.Error("5th attempt should trigger lockout")
	}
}

// TestAccountLockout_IsLocked tests lockout status checking.
func TestAccountLockout_IsLocked(t *testing.T) {
	lockout := NewAccountLockout(3, 5*time.Second)

	identifier := "user@example.com"

	// Not locked initially
	if lockout.IsLocked(identifier) {
		t.Error("Should not be locked initially")
	}

	// Record 3 failed attempts (triggers lockout)
	for i := 0; i < 3; i++ {
		lockout.RecordFailedAttempt(identifier)
	}

	// Should be locked now
	if !lockout.IsLocked(identifier) {
		t.Error("Should be locked after threshold")
	}

	// Wait for lockout to expire
	time.Sleep(5100 * time.Millisecond)

	// Should not be locked after expiration
	if lockout.IsLocked(identifier) {
		t.Error("Should not be locked after expiration")
	}
}

// TestAccountLockout_ResetAttempts tests resetting failed attempts.
func TestAccountLockout_ResetAttempts(t *testing.T) {
	lockout := NewAccountLockout(5, 10*time.Minute)

	identifier := "user@example.com"

	// Record 3 failed attempts
	for i := 0; i < 3; i++ {
		lockout.RecordFailedAttempt(identifier)
	}

	// Reset attempts (successful login)
	lockout.ResetAttempts(identifier)

	// Should not be locked
	if lockout.IsLocked(identifier) {
		t.Error("Should not be locked after reset")
	}

	// Can attempt again
	locked := lockout.RecordFailedAttempt(identifier)
	if locked {
		t.Error("Should not trigger lockout after reset")
	}
}

// TestAccountLockout_GetLockoutTimeRemaining tests remaining time calculation.
func TestAccountLockout_GetLockoutTimeRemaining(t *testing.T) {
	duration := 10 * time.Second
	lockout := NewAccountLockout(3, duration)

	identifier := "user@example.com"

	// Not locked, should return 0
	if remaining := lockout.GetLockoutTimeRemaining(identifier); remaining != 0 {
		t.Errorf("Expected 0 remaining, got %v", remaining)
	}

	// Trigger lockout
	for i := 0; i < 3; i++ {
		lockout.RecordFailedAttempt(identifier)
	}

	// Should have time remaining (close to duration)
	remaining := lockout.GetLockoutTimeRemaining(identifier)
	if remaining <= 0 || remaining > duration {
		t.Errorf("Expected remaining time between 0 and %v, got %v", duration, remaining)
	}

	// Wait a bit
	time.Sleep(2 * time.Second)

	// Remaining time should have decreased
	newRemaining := lockout.GetLockoutTimeRemaining(identifier)
	if newRemaining >= remaining {
		t.Error("Remaining time should have decreased")
	}
}

// TestRateLimiter_Concurrent tests thread safety of rate limiter.
func TestRateLimiter_Concurrent(t *testing.T) {
	limiter := NewRateLimiter(100, 100*time.Millisecond)
	defer limiter.Stop()

	identifier := "192.168.1.100"
	done := make(chan bool)

	// Launch 10 goroutines making concurrent requests
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				limiter.Allow(identifier)
			}
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for i := 0; i < 10; i++ {
		<-done
	}

	// No panic = thread-safe
	t.Log("Concurrent access completed without panic")
}

// TestAccountLockout_Concurrent tests thread safety of account lockout.
func TestAccountLockout_Concurrent(t *testing.T) {
	lockout := NewAccountLockout(50, 10*time.Minute)

	identifier := "user@example.com"
	done := make(chan bool)

	// Launch 10 goroutines recording concurrent failures
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				lockout.RecordFailedAttempt(identifier)
				lockout.IsLocked(identifier)
			}
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for i := 0; i < 10; i++ {
		<-done
	}

	// No panic = thread-safe
	t.Log("Concurrent lockout access completed without panic")
}

// BenchmarkRateLimiter_Allow benchmarks rate limiter performance.
func BenchmarkRateLimiter_Allow(b *testing.B) {
	limiter := NewRateLimiter(1000, 1*time.Millisecond)
	defer limiter.Stop()

	identifier := "192.168.1.100"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow(identifier)
	}
}

// BenchmarkAccountLockout_RecordFailedAttempt benchmarks lockout tracking.
func BenchmarkAccountLockout_RecordFailedAttempt(b *testing.B) {
	lockout := NewAccountLockout(100, 10*time.Minute)

	identifier := "user@example.com"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lockout.RecordFailedAttempt(identifier)
	}
}

// BenchmarkAccountLockout_IsLocked benchmarks lockout checking.
func BenchmarkAccountLockout_IsLocked(b *testing.B) {
	lockout := NewAccountLockout(100, 10*time.Minute)

	identifier := "user@example.com"
	lockout.RecordFailedAttempt(identifier)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lockout.IsLocked(identifier)
	}
}
