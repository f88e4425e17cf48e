package schnorr_test

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Caqil/schnorr-verify/pkg/schnorr"
)

func ExampleVerify() {
	pk, _ := hex.DecodeString("DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659")
	msg, _ := hex.DecodeString("243F6A8885A308D313198A2E03707344A4093822299F31D0082EFA98EC4E6C89")
	sig, _ := hex.DecodeString("6896BD60EEAE296DB48A229FF71DFE071BDE413E6D43F917DC8DCF8C78DE33418906D11AC976ABCCB20B091292BFF4EA897EFCB639EA871CFA95F6DE339E4B0A")

	ok, err := schnorr.Verify(pk, msg, sig)
	fmt.Println(ok, err)

	_, err = schnorr.Verify(pk[:31], msg, sig)
	fmt.Println(errors.Is(err, schnorr.ErrMalformedInput))
	// Output:
	// true <nil>
	// true
}
