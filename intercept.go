package main

// InterceptPoint returns the world position a shooter must aim at so a
// projectile fired now at muzzle speed projSpeed meets the target,
// assuming the target holds its current velocity. Also returns the time
// to impact in seconds.
//
// Solved in the shooter's rest frame: with relV = targetVel - shooterVel
// and dp = shooterPos - targetPos, the projectile meets the target when
// |dp + relV*t| = projSpeed*t, a quadratic in t. The larger real root is
// preferred (the later, still-valid intercept when both are positive).
// When the target outruns the projectile there is no real solution; the
// clamped real part is returned as a best-effort aim point and callers
// must sanity-check range before firing.
func InterceptPoint(shooterPos, shooterVel, targetPos, targetVel Vec3, projSpeed float64) (Vec3, float64) {
	relV := targetVel.Sub(shooterVel)
	dp := shooterPos.Sub(targetPos)

	a := projSpeed*projSpeed - relV.LenSq()
	b := 2 * relV.Dot(dp)
	c := -dp.LenSq()

	_, t, _ := SolveQuadratic(a, b, c)
	if t < 0 {
		t = 0
	}
	return targetPos.Add(relV.Scale(t)), t
}
