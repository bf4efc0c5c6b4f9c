// Package langevin integrates underdamped Langevin dynamics with the BAOAB
// splitting of Leimkuhler and Matthews (J. Chem. Phys. 138, 174102, 2013).
//
// A step is a half kick (B), a half drift (A), an exact Ornstein-Uhlenbeck
// velocity update (O), a half drift and a half kick. The force is evaluated
// once per step. Configurations and velocities are n×d gonum matrices, one row
// per particle.
//
// Noise comes from an explicitly passed *rand.Rand, so a trajectory is fully
// determined by its inputs and seed:
//
//	rng := rand.New(rand.NewSource(42))
//	traj, err := langevin.Integrate(force, 1000, x0, v0, mass, langevin.DefaultParams(), rng)
//
// # Thread Safety
//
// Steppers are NOT thread-safe. [Ensemble] runs independent trajectories in
// parallel with one random source per run; the force function must then be
// safe for concurrent use.
package langevin
