package main

// CraftClass identifies the class of spacecraft
type CraftClass int

const (
	ClassFighter     CraftClass = 0
	ClassInterceptor CraftClass = 1
	ClassCorvette    CraftClass = 2
	ClassCruiser     CraftClass = 3
	ClassDreadnought CraftClass = 4
)

// AttackAttitude selects how a capital ship orients once in attack
// position: which two turn axes it resolves against its target vector.
type AttackAttitude int

const (
	AttitudeYawPitch AttackAttitude = 0 // nose-on
	AttitudeRollYaw  AttackAttitude = 1 // broadside via roll then yaw
	AttitudeRollPitch AttackAttitude = 2 // belly/dorsal guns via roll then pitch
)

// CraftClassDef holds the stats for a craft class. Controllers consume
// these as opaque numbers.
type CraftClassDef struct {
	MaxHP      int
	Radius     float64
	MaxSpeed   float64 // units/s at full throttle
	Accel      float64 // units/s^2
	TurnRate   float64 // rad/s at full turn intensity
	StrafeAccel float64

	WeaponSpeed  float64 // projectile muzzle speed
	WeaponRange  float64
	WeaponCD     float64 // seconds between shots
	WeaponDamage int
	WeaponCount  int

	Capital  bool
	Attitude AttackAttitude
}

var CraftClasses = [5]CraftClassDef{
	// Fighter: balanced dogfighter
	{
		MaxHP: 100, Radius: 8, MaxSpeed: 320, Accel: 450, TurnRate: 2.4, StrafeAccel: 180,
		WeaponSpeed: 900, WeaponRange: 1400, WeaponCD: 0.25, WeaponDamage: 12, WeaponCount: 2,
	},
	// Interceptor: fast, fragile, short range
	{
		MaxHP: 60, Radius: 6, MaxSpeed: 430, Accel: 620, TurnRate: 3.2, StrafeAccel: 240,
		WeaponSpeed: 1000, WeaponRange: 1100, WeaponCD: 0.15, WeaponDamage: 8, WeaponCount: 2,
	},
	// Corvette: heavy fighter, sluggish turns
	{
		MaxHP: 220, Radius: 14, MaxSpeed: 240, Accel: 300, TurnRate: 1.6, StrafeAccel: 110,
		WeaponSpeed: 850, WeaponRange: 1600, WeaponCD: 0.4, WeaponDamage: 22, WeaponCount: 2,
	},
	// Cruiser: capital, broadside batteries
	{
		MaxHP: 1400, Radius: 90, MaxSpeed: 110, Accel: 60, TurnRate: 0.35, StrafeAccel: 20,
		WeaponSpeed: 700, WeaponRange: 2400, WeaponCD: 0.8, WeaponDamage: 35, WeaponCount: 4,
		Capital: true, Attitude: AttitudeRollYaw,
	},
	// Dreadnought: capital, nose-on spinal guns
	{
		MaxHP: 3200, Radius: 160, MaxSpeed: 70, Accel: 35, TurnRate: 0.2, StrafeAccel: 10,
		WeaponSpeed: 650, WeaponRange: 3000, WeaponCD: 1.2, WeaponDamage: 60, WeaponCount: 6,
		Capital: true, Attitude: AttitudeYawPitch,
	},
}

// GetClassDef returns the definition for a craft class
func GetClassDef(class CraftClass) CraftClassDef {
	if class < 0 || int(class) >= len(CraftClasses) {
		return CraftClasses[ClassFighter]
	}
	return CraftClasses[class]
}
