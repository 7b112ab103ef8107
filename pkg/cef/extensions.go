package cef

import (
	"regexp"
	"strconv"
	"strings"
)

// KeyType is the semantic type of an extension value.
type KeyType string

const (
	TypeString    KeyType = "string"
	TypeInteger   KeyType = "integer"
	TypeIPv4Addr  KeyType = "ipv4addr"
	TypeMACAddr   KeyType = "macaddr"
	TypeFQDN      KeyType = "fqdn"
	TypePortNum   KeyType = "portnum"
	TypeTimestamp KeyType = "timestamp"
	TypePriv      KeyType = "priv"
)

// KeyInfo describes an extension key of the CEF / ArcSight dictionary.
type KeyInfo struct {
	LongName string
	Type     KeyType
}

// See the ArcSight CEF implementation standard for the definitions.
var dictionary = map[string]KeyInfo{
	// standard CEF keys
	"act":     {"deviceAction", TypeString},
	"app":     {"applicationProtocol", TypeString},
	"in":      {"bytesIn", TypeInteger},
	"out":     {"bytesOut", TypeInteger},
	"dst":     {"destinationAddress", TypeIPv4Addr},
	"dhost":   {"destinationHostName", TypeFQDN},
	"dmac":    {"destinationMacAddress", TypeMACAddr},
	"dntdom":  {"destinationNtDomain", TypeString},
	"dpt":     {"destinationPort", TypePortNum},
	"dproc":   {"destinationProcessName", TypeString},
	"duid":    {"destinationUserId", TypeString},
	"dpriv":   {"destinationUserPrivileges", TypeString},
	"duser":   {"destinationUserName", TypeString},
	"end":     {"endTime", TypeTimestamp},
	"fname":   {"fileName", TypeString},
	"fsize":   {"fileSize", TypeInteger},
	"msg":     {"message", TypeString},
	"rt":      {"receiptTime", TypeTimestamp},
	"request": {"requestURL", TypeString},
	"src":     {"sourceAddress", TypeIPv4Addr},
	"shost":   {"sourceHostName", TypeFQDN},
	"smac":    {"sourceMacAddress", TypeMACAddr},
	"sntdom":  {"sourceNtDomain", TypeString},
	"spt":     {"sourcePort", TypePortNum},
	"spriv":   {"sourceUserPrivileges", TypePriv},
	"suid":    {"sourceUserId", TypeString},
	"suser":   {"sourceUserName", TypeString},
	"start":   {"startTime", TypeTimestamp},
	"proto":   {"transportProtocol", TypeString},
	"cat":     {"deviceEventCategory", TypeString},
	"outcome": {"eventOutcome", TypeString},
	"reason":  {"reason", TypeString},
	"dvc":     {"deviceAddress", TypeIPv4Addr},
	"dvchost": {"deviceHostName", TypeFQDN},

	"externalId":       {"externalId", TypeString},
	"deviceExternalId": {"deviceExternalId", TypeString},

	// custom string and number slots with their labels
	"cs1":      {"deviceCustomString1", TypeString},
	"cs2":      {"deviceCustomString2", TypeString},
	"cs3":      {"deviceCustomString3", TypeString},
	"cs4":      {"deviceCustomString4", TypeString},
	"cs5":      {"deviceCustomString5", TypeString},
	"cs6":      {"deviceCustomString6", TypeString},
	"cs1Label": {"deviceCustomString1Label", TypeString},
	"cs2Label": {"deviceCustomString2Label", TypeString},
	"cs3Label": {"deviceCustomString3Label", TypeString},
	"cs4Label": {"deviceCustomString4Label", TypeString},
	"cs5Label": {"deviceCustomString5Label", TypeString},
	"cs6Label": {"deviceCustomString6Label", TypeString},
	"cn1":      {"deviceCustomNumber1", TypeInteger},
	"cn2":      {"deviceCustomNumber2", TypeInteger},
	"cn3":      {"deviceCustomNumber3", TypeInteger},
	"cn1Label": {"deviceCustomNumber1Label", TypeString},
	"cn2Label": {"deviceCustomNumber2Label", TypeString},
	"cn3Label": {"deviceCustomNumber3Label", TypeString},

	// ArcSight keys; there are several hundred more
	"requestMethod":            {"HTTPRequestMethod", TypeString},
	"requestContext":           {"UserAgent", TypeString},
	"requestClientApplication": {"requestClientApplication", TypeString},
}

// Validator reports whether a coerced extension value is acceptable.
type Validator func(value string) bool

// minTimestampMillis rejects epoch seconds passed where milliseconds are
// expected (Jul 20 2012 in ms).
const minTimestampMillis = 1342811763747

var (
	ipv4Pattern      = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	macPattern       = regexp.MustCompile(`^[0-9A-F]{2}(:[0-9A-F]{2}){5}$`)
	fqdnPattern      = regexp.MustCompile(`[\w.]+`)
	timestampPattern = regexp.MustCompile(`^\w{3} \d{2} \d{4} \d{2}:\d{2}:\d{2}$`)
)

var privileges = map[string]bool{
	"Administrator": true,
	"User":          true,
	"Guest":         true,
}

// Validators holds the value check for every KeyType.
var Validators = map[KeyType]Validator{
	TypeString: func(string) bool {
		return true
	},
	TypeInteger: func(value string) bool {
		_, ok := parseInteger(value)
		return ok
	},
	TypeIPv4Addr: ipv4Pattern.MatchString,
	TypeMACAddr:  macPattern.MatchString,
	// meh
	TypeFQDN: fqdnPattern.MatchString,
	TypePortNum: func(value string) bool {
		n, ok := parseInteger(value)
		return ok && n >= 0 && n <= 65535
	},
	TypeTimestamp: func(value string) bool {
		if n, ok := parseInteger(value); ok {
			return n > minTimestampMillis
		}
		return timestampPattern.MatchString(value)
	},
	TypePriv: func(value string) bool {
		return privileges[value]
	},
}

// LookupKey returns the dictionary entry of a short extension key.
func LookupKey(key string) (KeyInfo, bool) {
	info, ok := dictionary[key]
	return info, ok
}

// ValidatorForKey returns the validator of the key's type, or false when
// the key is not in the dictionary.
func ValidatorForKey(key string) (Validator, bool) {
	info, ok := dictionary[key]
	if !ok {
		return nil, false
	}
	return Validators[info.Type], true
}

// parseInteger accepts base 10 integers without a decimal point.
func parseInteger(value string) (int64, bool) {
	if strings.Contains(value, ".") {
		return 0, false
	}

	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
