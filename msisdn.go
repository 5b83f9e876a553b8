package notify

import (
	"fmt"

	"github.com/IMQS/notify/smsline"
	"github.com/ttacon/libphonenumber"
)

// cleanMSISDNs receives a list of MSISDNs and runs a series
// of checks to ensure that they are valid mobile numbers for the countries
// provided. Invalid and duplicate numbers are ignored and removed from the reply.
// Without countries, numbers are only reduced to their digits.
func cleanMSISDNs(ns, cs []string) []string {
	pNs := []string{}

	for _, n := range ns {
		// only allow numbers
		n = smsline.MSISDN(n)

		if len(cs) > 0 {
			// add the country code and verify if number is valid
			n = addCountryCode(n, cs)
		}
		if n != "" {
			pNs = append(pNs, n)
		}
	}

	return removeDuplicates(pNs)
}

// addCountryCode will find the first possible valid number for the
// given set of country codes. More prevalent country codes
// must be placed at the top of the country code slice to improve
// performance.
func addCountryCode(t string, cs []string) string {
	mn, err := libphonenumber.Parse(t, cs[0])
	if err == nil && libphonenumber.IsValidNumberForRegion(mn, cs[0]) {
		return fmt.Sprintf("%v%v", mn.GetCountryCode(), mn.GetNationalNumber())
	}
	if len(cs) > 1 {
		return addCountryCode(t, cs[1:])
	}
	return ""
}

// removeDuplicates keeps the first occurrence of every number.
func removeDuplicates(ns []string) []string {
	fnd := map[string]bool{}
	res := []string{}
	for _, n := range ns {
		if !fnd[n] {
			fnd[n] = true
			res = append(res, n)
		}
	}
	return res
}
