/*
Vault contract locks NEP-17 tokens of a single configured token contract on
behalf of beneficiaries until the release time fixed at deployment.

Tokens can be locked in two ways. addBalance and addBalanceFor pull tokens
from the depositor using allowance given to the vault, so the depositor must
approve the vault first. Alternatively, tokens can be sent to the vault with
a plain NEP-17 transfer passing the beneficiary as transfer data (sender is
the beneficiary if data is null). Both ways credit the beneficiary in
onNEP17Payment.

Once the release time is reached, locked tokens can be released to the
beneficiaries. Single-target release fails if the beneficiary has nothing
locked while batchRelease silently skips such beneficiaries.

Deployment data is [token, releaseTime, owner] where releaseTime is a Unix
timestamp in milliseconds that must be in the future. Owner can only update
the contract.

# Contract notifications

Locked notification. Produced when tokens are credited to the beneficiary.

	Locked:
	  - name: beneficiary
	    type: Hash160
	  - name: amount
	    type: Integer

Released notification. Produced when locked tokens are sent to the
beneficiary.

	Released:
	  - name: beneficiary
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package vault
