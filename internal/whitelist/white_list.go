// Package whitelist holds the client address patterns allowed to call the
// http service. An empty list lets every client through.
package whitelist

import (
	"regexp"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	lock sync.RWMutex
	ips  = map[string]*regexp.Regexp{}
)

// Setup replaces the list with the given patterns.
func Setup(list []string) error {
	compiled := make(map[string]*regexp.Regexp, len(list))
	for _, ip := range list {
		re, err := regexp.Compile(ip)
		if err != nil {
			return errors.Wrapf(err, "whitelist pattern %q", ip)
		}
		compiled[ip] = re
	}

	lock.Lock()
	defer lock.Unlock()
	ips = compiled
	return nil
}

// Enabled reports whether any pattern is set.
func Enabled() bool {
	lock.RLock()
	defer lock.RUnlock()
	return len(ips) > 0
}

//VerifyIP check the ip is a legal ip or not
func VerifyIP(ip string) bool {
	lock.RLock()
	defer lock.RUnlock()

	for _, r := range ips {
		if r.MatchString(ip) {
			return true
		}
	}
	return false
}

func IPList() []string {
	lock.RLock()
	defer lock.RUnlock()

	list := []string{}
	for ip := range ips {
		list = append(list, ip)
	}
	sort.Strings(list)
	return list
}

func ClearIPList() {
	lock.Lock()
	defer lock.Unlock()

	ips = map[string]*regexp.Regexp{}
}
