package material

import "math"

// Reflectance calculates the Fresnel reflection coefficient using Schlick's
// approximation. The refraction ratio is n1/n2 across the boundary being
// crossed and cosine is the incident angle cosine against the oriented
// normal. The result is always in [0, 1] and equals ((n1-n2)/(n1+n2))^2 at
// normal incidence.
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	if cosine < 0 {
		cosine = 0
	} else if cosine > 1 {
		cosine = 1
	}
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
